package user

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"jsonview/domain/shared"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	pathUserID      = "userId"
	pathUserDto     = "userDto"
	pathOrderDto    = "orderDto"
	pathPageRequest = "pageRequest"

	maxPageSize = 100
)

// ruleMessages maps "<json field>.<tag>" to the finding message.
var ruleMessages = map[string]string{
	"username.notblank":    "User dto: username is null or empty",
	"email.notblank":       "Email is null or empty",
	"email.email":          "Invalid email format",
	"userId.required":      "Order dto: user id mustn't be null",
	"userId.gt":            "Order dto: user id must be positive",
	"orderBucket.notblank": "Order dto: order bucket is null or empty",
}

// Validator checks service arguments before any storage access and reports
// every failed field at once.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// registration only fails for an empty tag name
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Validator{validate: v}
}

// findings accumulates validation results for one call.
type findings []shared.Finding

func (f *findings) add(field, message string) {
	*f = append(*f, shared.Finding{Field: field, Message: message})
}

func (f findings) err() error {
	return shared.NewValidationError(f)
}

func (v *Validator) checkID(f *findings, id int64) {
	if err := v.validate.Var(id, "gt=0"); err != nil {
		f.add(pathUserID, "User id must be positive")
	}
}

func (v *Validator) checkStruct(f *findings, prefix string, s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %s: %w", prefix, err)
	}
	for _, fe := range verrs {
		msg, ok := ruleMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
		}
		f.add(prefix+"."+fe.Field(), msg)
	}
	return nil
}

// ValidateID checks a bare user id argument.
func (v *Validator) ValidateID(id int64) error {
	var f findings
	v.checkID(&f, id)
	return f.err()
}

// ValidateUserRequest checks a create payload.
func (v *Validator) ValidateUserRequest(req *UserRequest) error {
	var f findings
	if err := v.checkUser(&f, req); err != nil {
		return err
	}
	return f.err()
}

// ValidateUpdate checks both the id and the payload of an update.
func (v *Validator) ValidateUpdate(id int64, req *UserRequest) error {
	var f findings
	v.checkID(&f, id)
	if err := v.checkUser(&f, req); err != nil {
		return err
	}
	return f.err()
}

func (v *Validator) checkUser(f *findings, req *UserRequest) error {
	if req == nil {
		f.add(pathUserDto, "User dto mustn't be null")
		return nil
	}
	return v.checkStruct(f, pathUserDto, req)
}

func (v *Validator) ValidateOrderRequest(req *OrderRequest) error {
	var f findings
	if req == nil {
		f.add(pathOrderDto, "Order dto mustn't be null")
		return f.err()
	}
	if err := v.checkStruct(&f, pathOrderDto, req); err != nil {
		return err
	}
	return f.err()
}

func (v *Validator) ValidatePageRequest(req *shared.PageRequest) error {
	var f findings
	if req == nil {
		f.add(pathPageRequest, "Pageable arg mustn't be null")
		return f.err()
	}
	if err := v.validate.Var(req.Page, "gte=0"); err != nil {
		f.add(pathPageRequest+".page", "Page number must not be negative")
	}
	if err := v.validate.Var(req.Size, fmt.Sprintf("gte=1,lte=%d", maxPageSize)); err != nil {
		f.add(pathPageRequest+".size", fmt.Sprintf("Page size must be between 1 and %d", maxPageSize))
	} else if req.Page > math.MaxInt/req.Size {
		f.add(pathPageRequest+".page", "Page number is too large")
	}
	return f.err()
}
