package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vadim/social-pulse/internal/domain/check/entity"
	"github.com/vadim/social-pulse/internal/domain/social/validator"
)

// Operation produces the data under test
type Operation func(ctx context.Context) (any, error)

// Run invokes op and checks its output with validate.
// No outcome escapes as an error or panic; everything becomes a Result.
func Run(ctx context.Context, name string, op Operation, validate validator.Predicate) (res entity.Result) {
	res = entity.Result{Name: name}

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprint(r)
			if msg == "" {
				msg = entity.MessageUnknownError
			}
			res = entity.Result{Name: name, Message: msg}
		}
		res.CheckedAt = time.Now().UTC()
	}()

	data, err := op(ctx)
	if err != nil {
		res.Message = err.Error()
		if res.Message == "" {
			res.Message = entity.MessageUnknownError
		}
		return res
	}

	res.Data = data
	if !validate(data) {
		res.Message = entity.MessageInvalidData
		return res
	}

	res.Success = true
	return res
}
