package binder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/shishobooks/stacks/pkg/errcodes"
)

var unknownFieldsRE = regexp.MustCompile(`unknown field "(.*)"`)

// Binder is a custom struct that implements the Echo Binder interface. It binds
// to a struct, uses mold to clean up the params, and validator to validate
// them. Pointers to slices of structs (bulk payloads) are handled one element
// at a time.
type Binder struct {
	queryDecoder *schema.Decoder
	formDecoder  *schema.Decoder
	conform      *mold.Transformer
	validate     *validator.Validate
}

// New initializes a new Binder instance with the appropriate validation
// functions registered.
func New() (*Binder, error) {
	queryDecoder := schema.NewDecoder()
	queryDecoder.SetAliasTag("query")
	formDecoder := schema.NewDecoder()
	formDecoder.SetAliasTag("form")
	conform := modifiers.New()
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return ""
	})
	for tag, fn := range validators {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return &Binder{queryDecoder, formDecoder, conform, validate}, nil
}

// Bind binds, modifies, and validates payloads against the given struct.
func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	log := logger.FromEchoContext(c)

	disallowEmptyBody := true
	if disallow, ok := c.Get("disallow_empty_body").(bool); ok {
		disallowEmptyBody = disallow
	}

	if req.ContentLength != 0 && req.Body != nil && req.Body != http.NoBody {
		ctype := req.Header.Get(echo.HeaderContentType)
		switch {
		case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
			dec := json.NewDecoder(req.Body)
			disallowUnknownFields := true
			if disallow, ok := c.Get("disallow_unknown_fields").(bool); ok {
				disallowUnknownFields = disallow
			}
			if disallowUnknownFields {
				dec.DisallowUnknownFields()
			}
			defer req.Body.Close()
			if err := dec.Decode(i); err != nil {
				// return better error message when there are unknown fields
				if matches := unknownFieldsRE.FindStringSubmatch(err.Error()); len(matches) > 1 {
					return errcodes.UnknownParameter(matches[1])
				}

				var typeErr *json.UnmarshalTypeError
				if errors.As(err, &typeErr) {
					return errcodes.ValidationTypeError(formatUnmarshalTypeError(typeErr))
				}

				log.Err(err).Error("unknown json decode error")

				return errcodes.MalformedPayload()
			}
		case strings.HasPrefix(ctype, echo.MIMEApplicationForm):
			params, err := c.FormParams()
			if err != nil {
				return errcodes.MalformedPayload()
			}
			if err := b.decodeQuery(i, params, b.formDecoder); err != nil {
				return err
			}
		default:
			return errcodes.UnsupportedMediaType()
		}
	} else {
		switch req.Method {
		case http.MethodGet, http.MethodHead, http.MethodDelete:
			if err := b.decodeQuery(i, c.QueryParams(), b.queryDecoder); err != nil {
				return err
			}
		default:
			if disallowEmptyBody {
				return errcodes.EmptyRequestBody()
			}
		}
	}

	v := reflect.ValueOf(i)
	if v.Kind() == reflect.Ptr && v.Elem().Kind() == reflect.Slice {
		return b.prepareSlice(req.Context(), v.Elem())
	}
	return b.prepare(req.Context(), i)
}

// prepare runs the modifiers, then the defaults, then validation.
func (b *Binder) prepare(ctx context.Context, i interface{}) error {
	if err := b.conform.Struct(ctx, i); err != nil {
		return errors.WithStack(err)
	}

	if err := defaults.Set(i); err != nil {
		return errors.WithStack(err)
	}

	if err := b.validate.Struct(i); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			return errcodes.ValidationError(formatValidationError(errs[0]))
		}
		return errors.WithStack(err)
	}
	return nil
}

func (b *Binder) prepareSlice(ctx context.Context, s reflect.Value) error {
	if s.Len() == 0 {
		return errcodes.ValidationError("payload must contain at least 1 element")
	}
	for idx := 0; idx < s.Len(); idx++ {
		elem := s.Index(idx)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				return errcodes.ValidationError(fmt.Sprintf("element %d can't be null", idx))
			}
		} else {
			elem = elem.Addr()
		}
		if err := b.prepare(ctx, elem.Interface()); err != nil {
			var e *errcodes.Error
			if errors.As(err, &e) {
				return &errcodes.Error{HTTPCode: e.HTTPCode, Code: e.Code, Message: fmt.Sprintf("element %d: %s", idx, e.Message)}
			}
			return err
		}
	}
	return nil
}

func (b *Binder) decodeQuery(i interface{}, params url.Values, decoder *schema.Decoder) error {
	err := decoder.Decode(i, params)
	if err == nil {
		return nil
	}

	var errs schema.MultiError
	if !errors.As(err, &errs) {
		return errors.WithStack(err)
	}
	// MultiError is a map, so pick the first key in sorted order to keep the
	// message stable.
	first := ""
	for k := range errs {
		if first == "" || k < first {
			first = k
		}
	}
	switch e := errs[first].(type) {
	case schema.ConversionError:
		return errcodes.ValidationTypeError(formatSchemaConversionError(e))
	case schema.UnknownKeyError:
		return errcodes.UnknownParameter(e.Key)
	default:
		return errors.WithStack(errs[first])
	}
}
