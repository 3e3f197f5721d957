// Package web defines common response components for the API.
package web

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response envelope for all handlers.
type Response struct {
	ResponseMessage string `json:"responseMessage"`
	ResponseCode    int    `json:"responseCode"`
	ResponseData    any    `json:"responseData"`
}

// OK wraps data into a success envelope.
func OK(data any) Response {
	return Response{
		ResponseMessage: "SUCCESS",
		ResponseCode:    http.StatusOK,
		ResponseData:    data,
	}
}

// Error wraps a given err into an error envelope with the given status code.
func Error(code int, err error) Response {
	return Response{
		ResponseMessage: err.Error(),
		ResponseCode:    code,
	}
}

// ErrorMsg builds an error envelope with the given message.
func ErrorMsg(code int, msg string) Response {
	return Response{
		ResponseMessage: msg,
		ResponseCode:    code,
	}
}

// GetErrorMsg returns a readable message for the first binding validation error.
func GetErrorMsg(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return "invalid request"
	}

	fe := ve[0]

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s field is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "currency":
		return fmt.Sprintf("%s must be a supported currency", fe.Field())
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and numbers", fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", fe.Field())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	}

	return fmt.Sprintf("%s field is invalid", fe.Field())
}
