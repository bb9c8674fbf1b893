package api

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"
)

var (
	ErrEmployeeIDRequired = errors.New("поле employee id не передано")
	ErrEmployeeNotFound   = errors.New("сотрудник не найден")
)

type okResponse struct {
	Status string `json:"status" example:"ok"`
	Msg    string `json:"msg" example:"Готово"`
}

type createdResponse struct {
	Status string `json:"status" example:"ok"`
	ID     int64  `json:"id" example:"104"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(ctx *fasthttp.RequestCtx, statusCode int, body any) {
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.SetStatusCode(statusCode)

	_ = json.NewEncoder(ctx).Encode(body)
}

func ok(ctx *fasthttp.RequestCtx, msg string) {
	writeJSON(ctx, fasthttp.StatusOK, okResponse{Status: "ok", Msg: msg})
}

func created(ctx *fasthttp.RequestCtx, id int64) {
	writeJSON(ctx, fasthttp.StatusCreated, createdResponse{Status: "ok", ID: id})
}

func writeError(ctx *fasthttp.RequestCtx, httpStatus int, err error) {
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.SetStatusCode(httpStatus)
	_ = json.NewEncoder(ctx).Encode(errorResponse{Code: fasthttp.StatusMessage(httpStatus), Message: err.Error()})
}

func badRequest(ctx *fasthttp.RequestCtx, code, message string) {
	writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Code: code, Message: message})
}

func notFound(ctx *fasthttp.RequestCtx, code, message string) {
	writeJSON(ctx, fasthttp.StatusNotFound, errorResponse{Code: code, Message: message})
}

func conflict(ctx *fasthttp.RequestCtx, code, message string) {
	writeJSON(ctx, fasthttp.StatusConflict, errorResponse{Code: code, Message: message})
}

func serverError(ctx *fasthttp.RequestCtx, err error) {
	writeError(ctx, fasthttp.StatusInternalServerError, err)
}
