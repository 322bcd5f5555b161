package catalogrepo

import (
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ServiceDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Description string    `gorm:"not null"`
	Package     string    `gorm:"index"`
	Type        string
	Part        string
	Remark      string
}

func (ServiceDTO) TableName() string {
	return "services"
}

func fromDomain(s *catalog.Service) ServiceDTO {
	class := s.Classification()
	return ServiceDTO{
		ID:          s.ID().Bytes(),
		Description: s.Description(),
		Package:     class.Package,
		Type:        class.Type,
		Part:        class.Part,
		Remark:      s.Remark(),
	}
}

func toDomain(dto ServiceDTO) (*catalog.Service, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return catalog.NewService(id, dto.Description, catalog.Classification{
		Package: dto.Package,
		Type:    dto.Type,
		Part:    dto.Part,
	}, dto.Remark)
}
