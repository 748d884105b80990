package http

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathUUID binds a required uuid path parameter.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return fromAPIUUID(name, id)
}

// headerUUID binds a required uuid header.
func headerUUID(c echo.Context, name string) (kernel.UUID, error) {
	value := c.Request().Header.Get(name)
	if value == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}

	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, value, &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return fromAPIUUID(name, id)
}

// queryString binds a required form-style query parameter.
func queryString(c echo.Context, name string) (string, error) {
	var value string
	if err := runtime.BindQueryParameter("form", true, true, name, c.QueryParams(), &value); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

// queryOptional binds an optional form-style query parameter. dest points to
// a pointer that stays nil when the parameter is absent.
func queryOptional(c echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func fromAPIUUID(name string, id openapi_types.UUID) (kernel.UUID, error) {
	res, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return res, nil
}
