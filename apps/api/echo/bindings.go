package echoapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NicoleRU22/Studynest/core"
)

const (
	orderingParam = "ordering"
	dateLayout    = "2006-01-02"
)

// appBinder rejects JSON bodies carrying unknown fields; everything else goes through echo's DefaultBinder.
type appBinder struct {
	echo.DefaultBinder
}

func (b *appBinder) Bind(i interface{}, ctx echo.Context) error {
	req := ctx.Request()
	if req.ContentLength == 0 || !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return b.DefaultBinder.Bind(i, ctx)
	}
	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error()).SetInternal(err)
	}
	return nil
}

type Ordering struct {
	Orderings []core.DBOrdering
}

// Bind reads `?ordering=field,-other`; a leading "-" sorts descending.
func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// queryTime parses a date (YYYY-MM-DD) or RFC 3339 query param. A missing param is the zero time.
func queryTime(ctx echo.Context, name string) (time.Time, error) {
	val := strings.TrimSpace(ctx.QueryParam(name))
	if val == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, val); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, core.NewValidationError(err, core.FieldError{Field: name, Error: "must be a date like 2024-03-13"})
	}
	return t.UTC(), nil
}

// queryBool parses an optional boolean query param.
func queryBool(ctx echo.Context, name string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(ctx.QueryParam(name))) {
	case "":
		return nil, nil
	case "1", "true", "yes":
		b := true
		return &b, nil
	case "0", "false", "no":
		b := false
		return &b, nil
	}
	return nil, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be true or false"})
}
