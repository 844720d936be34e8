package model

import (
	"time"

	"github.com/google/uuid"
)

type TemplateCategory string

const (
	TemplateCategoryGeneral     TemplateCategory = "general"
	TemplateCategoryConsulting  TemplateCategory = "consulting"
	TemplateCategoryDesign      TemplateCategory = "design"
	TemplateCategoryDevelopment TemplateCategory = "development"
	TemplateCategoryMarketing   TemplateCategory = "marketing"
	TemplateCategoryClient      TemplateCategory = "client"
	TemplateCategoryOther       TemplateCategory = "other"
)

type TemplateSection struct {
	ID             uuid.UUID   `json:"id"`
	Type           SectionType `json:"type"`
	Title          string      `json:"title"`
	DefaultContent string      `json:"defaultContent"`
	Order          int         `json:"order"`
	IsRequired     bool        `json:"isRequired"`
}

type Template struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    TemplateCategory  `json:"category"`
	Sections    []TemplateSection `json:"sections"`
	IsPremium   bool              `json:"isPremium"`
	CreatedAt   time.Time         `json:"createdAt"`
}
