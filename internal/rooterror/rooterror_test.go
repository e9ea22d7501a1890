package rooterror

import (
	"testing"

	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type mapLocalizer map[string]string

func (m mapLocalizer) T(id, fallback string) string {
	if s, ok := m[id]; ok {
		return s
	}
	return fallback
}

func TestResolve(t *testing.T) {
	required := "value_error.all_fields_are_required"

	tests := []struct {
		name   string
		in     Input
		want   Error
		wantOK bool
	}{
		{
			name: "local code in catalog wins over everything",
			in: Input{
				Plain:     required,
				Transport: NetworkFailure(),
				Errors:    []fielderrors.FieldError{fielderrors.Root("value_error.invalid_credentials", "bad")},
				Messages:  Messages{required: "Fill out all fields."},
			},
			want:   Error{Type: required, Message: "Fill out all fields."},
			wantOK: true,
		},
		{
			name: "local code missing from catalog falls through",
			in: Input{
				Plain:     required,
				Transport: Success(),
			},
			wantOK: false,
		},
		{
			name:   "network failure",
			in:     Input{Transport: NetworkFailure()},
			want:   Error{Type: TypeNetwork, Message: "Site server can't be reached."},
			wantOK: true,
		},
		{
			name:   "bad request",
			in:     Input{Transport: ServerError(400)},
			want:   Error{Type: TypeGraphQL, Message: "Unexpected error has occurred."},
			wantOK: true,
		},
		{
			name:   "other server status",
			in:     Input{Transport: ServerError(500)},
			want:   Error{Type: TypeGraphQL, Message: "Unexpected error has occurred."},
			wantOK: true,
		},
		{
			name:   "no network layer",
			in:     Input{Transport: Unclassified()},
			want:   Error{Type: TypeGraphQL, Message: "Unexpected error has occurred."},
			wantOK: true,
		},
		{
			name:   "success without errors",
			in:     Input{Transport: Success()},
			wantOK: false,
		},
		{
			name: "location mismatch",
			in: Input{
				Errors:    []fielderrors.FieldError{fielderrors.New([]string{"username"}, "value_error.required", "required")},
				Locations: []string{fielderrors.RootLocation},
			},
			wantOK: false,
		},
		{
			name: "not authorized default beats server text",
			in: Input{
				Errors:   []fielderrors.FieldError{fielderrors.Root(TypeNotAuthorized, "server text")},
				Messages: Messages{},
			},
			want:   Error{Type: TypeNotAuthorized, Message: "You need to be signed in to perform this action."},
			wantOK: true,
		},
		{
			name: "caller catalog overrides not authorized default",
			in: Input{
				Errors:   []fielderrors.FieldError{fielderrors.Root(TypeNotAuthorized, "server text")},
				Messages: Messages{TypeNotAuthorized: "Log in first."},
			},
			want:   Error{Type: TypeNotAuthorized, Message: "Log in first."},
			wantOK: true,
		},
		{
			name: "first of two errors at same location",
			in: Input{
				Errors: []fielderrors.FieldError{
					fielderrors.Root("first", "one"),
					fielderrors.Root("second", "two"),
				},
			},
			want:   Error{Type: "first", Message: "one"},
			wantOK: true,
		},
		{
			name: "synthesized transport error precedes server errors",
			in: Input{
				Transport: ServerError(400),
				Errors:    []fielderrors.FieldError{fielderrors.Root("value_error.invalid_credentials", "bad")},
			},
			want:   Error{Type: TypeGraphQL, Message: "Unexpected error has occurred."},
			wantOK: true,
		},
		{
			name: "locations scanned in caller order",
			in: Input{
				Errors: []fielderrors.FieldError{
					fielderrors.Root("root_type", "root"),
					fielderrors.New([]string{"title"}, "title_type", "title"),
				},
				Locations: []string{"title", fielderrors.RootLocation},
			},
			want:   Error{Type: "title_type", Message: "title"},
			wantOK: true,
		},
		{
			name: "nested location joined with dots",
			in: Input{
				Errors:    []fielderrors.FieldError{fielderrors.New([]string{"threads", "1"}, "thread_error.not_found", "gone")},
				Locations: []string{"threads.1"},
			},
			want:   Error{Type: "thread_error.not_found", Message: "gone"},
			wantOK: true,
		},
		{
			name: "empty catalog entry falls back to server text",
			in: Input{
				Errors:   []fielderrors.FieldError{fielderrors.Root("x", "server")},
				Messages: Messages{"x": ""},
			},
			want:   Error{Type: "x", Message: "server"},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_LocalAlwaysWins(t *testing.T) {
	outcomes := []Outcome{Success(), NetworkFailure(), ServerError(400), ServerError(503), Unclassified()}
	msgs := Messages{"local": "Local message"}
	for _, o := range outcomes {
		got, ok := Resolve(Input{
			Plain:     "local",
			Transport: o,
			Errors:    []fielderrors.FieldError{fielderrors.Root("server", "server")},
			Messages:  msgs,
		})
		assert.True(t, ok, o.String())
		assert.Equal(t, Error{Type: "local", Message: "Local message"}, got, o.String())
	}
}

func TestResolve_EmptyLocationsMatchNothing(t *testing.T) {
	errs := []fielderrors.FieldError{fielderrors.Root("x", "root text")}

	got, ok := Resolve(Input{Errors: errs, Locations: []string{}})
	assert.False(t, ok)
	assert.Equal(t, Error{}, got)

	got, ok = Resolve(Input{Errors: errs, Locations: nil})
	assert.True(t, ok)
	assert.Equal(t, Error{Type: "x", Message: "root text"}, got)
}

func TestResolver_UsesLocalizerForDefaults(t *testing.T) {
	r := NewResolver(mapLocalizer{
		TypeNetwork:       "Serveris nav sasniedzams.",
		TypeNotAuthorized: "Piesakieties.",
	})

	got, ok := r.Resolve(Input{Transport: NetworkFailure()})
	assert.True(t, ok)
	assert.Equal(t, "Serveris nav sasniedzams.", got.Message)

	got, ok = r.Resolve(Input{Errors: []fielderrors.FieldError{fielderrors.Root(TypeNotAuthorized, "x")}})
	assert.True(t, ok)
	assert.Equal(t, "Piesakieties.", got.Message)

	got, ok = r.Resolve(Input{Transport: ServerError(400)})
	assert.True(t, ok)
	assert.Equal(t, "Unexpected error has occurred.", got.Message)
}

func TestResolve_DoesNotMutateCallerMessages(t *testing.T) {
	msgs := Messages{}
	_, _ = Resolve(Input{Errors: []fielderrors.FieldError{fielderrors.Root(TypeNotAuthorized, "x")}, Messages: msgs})
	assert.Empty(t, msgs)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "success", Success().String())
	assert.Equal(t, "network_failure", NetworkFailure().String())
	assert.Equal(t, "server_error(400)", ServerError(400).String())
	assert.Equal(t, "unclassified", Unclassified().String())
	assert.False(t, Success().Failed())
	assert.True(t, Unclassified().Failed())
}
