//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/udisondev/vgcspread/internal/config"
	"github.com/udisondev/vgcspread/internal/logger"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		slog.Error("loading config", "err", err)
		os.Exit(1)
	}
	// Lambda collects stderr; files are not kept between invocations.
	cfg.Logging.FileEnabled = false
	if _, err := logger.Setup(cfg.Logging); err != nil {
		slog.Error("setting up logger", "err", err)
		os.Exit(1)
	}

	a, err := newApp(context.Background(), cfg)
	if err != nil {
		slog.Error("building app", "err", err)
		os.Exit(1)
	}
	defer a.close()

	lambda.Start(newHandler(a))
}

func newHandler(a *app) func(context.Context, events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	return func(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
		body := event.Body
		if event.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(body)
			if err != nil {
				return errResp(400, "invalid base64 body")
			}
			body = string(decoded)
		}

		var env envelope
		if err := json.Unmarshal([]byte(body), &env); err != nil {
			return errResp(400, "invalid JSON: "+err.Error())
		}
		if len(env.Request) == 0 {
			return errResp(400, "missing request field")
		}

		status, out := dispatch(ctx, a, env)
		if status != 200 {
			slog.Warn("request failed", "op", env.Op, "status", status)
		}
		return jsonResp(status, out)
	}
}

func jsonResp(code int, v any) (events.LambdaFunctionURLResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return errResp(500, "encoding response: "+err.Error())
	}
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}
