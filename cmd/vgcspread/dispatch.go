package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/udisondev/vgcspread/internal/calc"
	"github.com/udisondev/vgcspread/internal/optimizer"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// envelope is one remote call: an operation name and its request body.
type envelope struct {
	Op      string          `json:"op"`
	Request json.RawMessage `json:"request"`
}

type errorBody struct {
	Error string `json:"error"`
}

var errUnknownOp = errors.New("unknown op")

// dispatch runs env against the app and returns the HTTP status and the
// response body.
func dispatch(ctx context.Context, a *app, env envelope) (int, any) {
	out, err := runOp(ctx, a, env)
	if err != nil {
		return statusFor(err), errorBody{Error: err.Error()}
	}
	return http.StatusOK, out
}

func runOp(ctx context.Context, a *app, env envelope) (any, error) {
	switch env.Op {
	case "optimize", "single", "dual", "multi":
		var req optimizer.Request
		if err := json.Unmarshal(env.Request, &req); err != nil {
			return nil, &decodeError{err}
		}
		mode := env.Op
		if mode == "optimize" {
			mode = "auto"
		}
		return runOptimize(ctx, a, mode, req)
	case "damage":
		var req calc.DamageRequest
		if err := json.Unmarshal(env.Request, &req); err != nil {
			return nil, &decodeError{err}
		}
		res, err := a.service.CalculateDamageRange(ctx, req)
		if err != nil {
			return nil, err
		}
		return damageOutput{Result: res, Summary: res.String(), KOChance: res.KOChance()}, nil
	case "speed":
		var req calc.SpeedComparisonRequest
		if err := json.Unmarshal(env.Request, &req); err != nil {
			return nil, &decodeError{err}
		}
		return a.service.CompareSpeed(ctx, req)
	case "speed_evs":
		var req calc.SpeedEVsRequest
		if err := json.Unmarshal(env.Request, &req); err != nil {
			return nil, &decodeError{err}
		}
		return a.service.FindSpeedEVs(ctx, req)
	}
	return nil, fmt.Errorf("%w %q", errUnknownOp, env.Op)
}

// decodeError marks a malformed request body.
type decodeError struct{ err error }

func (e *decodeError) Error() string { return "invalid request: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func statusFor(err error) int {
	var de *decodeError
	switch {
	case errors.As(err, &de), errors.Is(err, errUnknownOp), calc.IsInvalidArgument(err):
		return http.StatusBadRequest
	case calc.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
