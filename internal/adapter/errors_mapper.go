// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-omnifolio/internal/syncrpc"
	"github.com/MKhiriev/go-omnifolio/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch code := resp.StatusCode(); {
	case code == http.StatusConflict:
		var conflict models.ConflictResponse
		if err := json.Unmarshal(resp.Body(), &conflict); err != nil {
			return fmt.Errorf("%w: conflict without current rev: %s", ErrUnexpectedResponse, body)
		}
		return &ConflictError{CurrentRev: conflict.CurrentRev}
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case code == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrServerUnavailable, code, body)
	default:
		if body == "" {
			body = http.StatusText(code)
		}
		return fmt.Errorf("%w: http %d: %s", ErrUnexpectedResponse, code, body)
	}
}

func mapGRPCError(err error, trailer metadata.MD) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	switch st.Code() {
	case codes.Aborted:
		values := trailer.Get(syncrpc.CurrentRevTrailer)
		if len(values) == 0 {
			return fmt.Errorf("%w: conflict without current rev", ErrUnexpectedResponse)
		}
		rev, parseErr := strconv.ParseInt(values[0], 10, 64)
		if parseErr != nil {
			return fmt.Errorf("%w: bad current rev %q", ErrUnexpectedResponse, values[0])
		}
		return &ConflictError{CurrentRev: rev}
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrBadRequest, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %s", ErrNetwork, st.Message())
	case codes.Internal, codes.Unknown, codes.ResourceExhausted:
		return fmt.Errorf("%w: %s", ErrServerUnavailable, st.Message())
	default:
		return fmt.Errorf("%w: %s: %s", ErrUnexpectedResponse, st.Code(), st.Message())
	}
}
