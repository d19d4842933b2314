package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/bible-study/internal/apperror"
	"github.com/sakif/bible-study/internal/auth"
	"github.com/sakif/bible-study/internal/model"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// newValidator reports fields by their JSON names, so a failure on
// FriendEmail reads "friend_email is required".
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// normalizer is implemented by request bodies whose fields need cleaning up
// (trimming, case folding) before their validate tags are checked.
type normalizer interface {
	normalize()
}

// requestDecoder decodes and validates JSON bodies. One is shared by all
// handlers; validator.Validate caches struct metadata and is safe for
// concurrent use.
type requestDecoder struct {
	validate *validator.Validate
}

// decode reads r's body into dst, normalizes it if dst is a normalizer and
// runs its `validate` tags.
//
// A body that is not JSON, or does not fit dst, is ErrBadRequest (400).
// A well-formed body that fails validation is ErrValidation (422).
func (d *requestDecoder) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.BadRequest("Invalid request body")
	}

	if n, ok := dst.(normalizer); ok {
		n.normalize()
	}

	if err := d.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return apperror.ValidationFailed(fe.Field(), validationMessage(fe))
		}
		return apperror.ValidationFailed("", err.Error())
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// currentUser returns the user RequireAuth put in the context. Routes that
// call it are always mounted behind RequireAuth, so a miss means a wiring
// bug; it still answers 401 instead of panicking.
func currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:  "unauthorized",
			Detail: "Could not validate credentials",
		})
		return nil, false
	}
	return user, true
}

// Timestamp accepts RFC 3339 as well as the zone-less forms an HTML
// datetime-local input produces ("2026-01-02T07:30"). Zone-less times are
// taken as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}
