package catalog

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrServiceIsNotConstructed = errors.New("Service must be created via NewService constructor")
	ErrDescriptionIsRequired   = errs.NewValueIsRequiredError("description")
)

// Service is one catalog entry. Package, type and part classify the entry for
// reporting; description doubles as the default execution item name.
type Service struct {
	id          kernel.UUID
	description string
	pkg         string
	kind        string
	part        string
	remark      string

	guard guard.ConstructorGuard
}

// Classification groups the optional package/type/part labels.
type Classification struct {
	Package string
	Type    string
	Part    string
}

func NewService(id kernel.UUID, description string, class Classification, remark string) (*Service, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionIsRequired
	}

	return &Service{
		id:          id,
		description: description,
		pkg:         strings.TrimSpace(class.Package),
		kind:        strings.TrimSpace(class.Type),
		part:        strings.TrimSpace(class.Part),
		remark:      remark,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (s *Service) Validate() error {
	if s == nil {
		return ErrServiceIsNotConstructed
	}
	return s.guard.Validate(ErrServiceIsNotConstructed)
}

func (s *Service) ID() kernel.UUID { return s.id }

func (s *Service) Description() string { return s.description }

func (s *Service) Classification() Classification {
	return Classification{Package: s.pkg, Type: s.kind, Part: s.part}
}

func (s *Service) Remark() string { return s.remark }
