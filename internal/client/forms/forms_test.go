package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/rooterror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const required = "value_error.all_fields_are_required"

func ok(context.Context) ([]fielderrors.FieldError, error) { return nil, nil }

func TestStates(t *testing.T) {
	f := New(nil, nil)
	assert.Equal(t, Idle, f.State())

	var during State
	done, err := f.Submit(context.Background(), func(context.Context) ([]fielderrors.FieldError, error) {
		during = f.State()
		return nil, nil
	})
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, Submitting, during)
	assert.Equal(t, Succeeded, f.State())

	_, found := f.Error()
	assert.False(t, found, "nothing to show after success")
}

func TestSubmit_BusyWhileInFlight(t *testing.T) {
	f := New(nil, nil)
	var inner error
	_, err := f.Submit(context.Background(), func(ctx context.Context) ([]fielderrors.FieldError, error) {
		_, inner = f.Submit(ctx, ok)
		return nil, nil
	})
	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrBusy)
}

func TestReject_LocalCodeWins(t *testing.T) {
	f := New(nil, rooterror.Messages{required: "Fill out all fields."})
	f.Reject(required)

	assert.Equal(t, Failed, f.State())
	got, found := f.Error()
	require.True(t, found)
	assert.Equal(t, rooterror.Error{Type: required, Message: "Fill out all fields."}, got)
}

func TestSubmit_Failures(t *testing.T) {
	tests := []struct {
		name      string
		errs      []fielderrors.FieldError
		err       error
		locations []string
		want      rooterror.Error
		found     bool
	}{
		{
			name:  "network",
			err:   status.Error(codes.Unavailable, "refused"),
			want:  rooterror.Error{Type: rooterror.TypeNetwork, Message: "Site server can't be reached."},
			found: true,
		},
		{
			name:  "bad request",
			err:   status.Error(codes.InvalidArgument, "bad id"),
			want:  rooterror.Error{Type: rooterror.TypeGraphQL, Message: "Unexpected error has occurred."},
			found: true,
		},
		{
			name:  "not authorized default text",
			errs:  []fielderrors.FieldError{fielderrors.Root("auth_error.not_authorized", "server text")},
			want:  rooterror.Error{Type: "auth_error.not_authorized", Message: "You need to be signed in to perform this action."},
			found: true,
		},
		{
			name:      "field error at requested location",
			errs:      []fielderrors.FieldError{fielderrors.New([]string{"title"}, "value_error.thread_title", "bad title")},
			locations: []string{"title"},
			want:      rooterror.Error{Type: "value_error.thread_title", Message: "bad title"},
			found:     true,
		},
		{
			name: "field error elsewhere",
			errs: []fielderrors.FieldError{fielderrors.New([]string{"title"}, "value_error.thread_title", "bad title")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(nil, nil)
			done, err := f.Submit(context.Background(), func(context.Context) ([]fielderrors.FieldError, error) {
				return tt.errs, tt.err
			})
			require.NoError(t, err)
			assert.False(t, done)
			assert.Equal(t, Failed, f.State())
			assert.Equal(t, tt.errs, f.FieldErrors())

			got, found := f.Error(tt.locations...)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubmit_ClearsPreviousRejection(t *testing.T) {
	f := New(nil, rooterror.Messages{required: "Fill out all fields."})
	f.Reject(required)

	_, err := f.Submit(context.Background(), func(context.Context) ([]fielderrors.FieldError, error) {
		return nil, errors.New("decode")
	})
	require.NoError(t, err)

	got, found := f.Error()
	require.True(t, found)
	assert.Equal(t, rooterror.TypeGraphQL, got.Type, "unclassified failure")
}

type bracketLocalizer struct{}

func (bracketLocalizer) T(id, fallback string) string { return "[" + fallback + "]" }

func TestResolverLocalizerIsUsed(t *testing.T) {
	f := New(rooterror.NewResolver(bracketLocalizer{}), nil)
	_, _ = f.Submit(context.Background(), func(context.Context) ([]fielderrors.FieldError, error) {
		return nil, status.Error(codes.Unavailable, "")
	})

	got, _ := f.Error()
	assert.Equal(t, "[Site server can't be reached.]", got.Message)
}
