/*
 * SPDX-FileCopyrightText: 2019 SAP SE or an SAP affiliate company and Gardener contributors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package ctxutil

import (
	"context"
	"time"
)

type key string

var cancelkey = key("cancel")

// CancelContext returns a context, which can be canceled by Cancel.
func CancelContext(ctx context.Context) context.Context {
	return cancelContext(context.WithCancel(ctx))
}

// TimeoutContext returns a context canceled after the given duration
// or by Cancel. A non-positive duration means no timeout.
func TimeoutContext(ctx context.Context, d time.Duration) context.Context {
	if d <= 0 {
		return CancelContext(ctx)
	}
	return cancelContext(context.WithTimeout(ctx, d))
}

func cancelContext(ctx context.Context, cancel context.CancelFunc) context.Context {
	return context.WithValue(ctx, cancelkey, cancel)
}

// Cancel cancels a context created by CancelContext or
// TimeoutContext. It is a no-op for other contexts.
func Cancel(ctx context.Context) {
	if cancel, ok := ctx.Value(cancelkey).(context.CancelFunc); ok {
		cancel()
	}
}
