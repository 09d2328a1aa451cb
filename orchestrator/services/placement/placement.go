package placement

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/authority"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/logger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/types"
)

// A4 portrait in PDF points, used when page geometry cannot be inspected
// and no other standard size is configured.
const (
	DefaultFallbackWidth  = 595.28
	DefaultFallbackHeight = 841.89
)

var ErrNoPlacement = errors.New("no signature placement configured")

func init() {
	// pdfcpu must never touch a config dir on the host.
	api.DisableConfigDir()
}

// NormalizedRect is a signature box relative to the page: x,y,w,h in [0,1],
// origin at the page's top-left corner, page 1-based.
type NormalizedRect struct {
	X    float64 `json:"x" mapstructure:"x"`
	Y    float64 `json:"y" mapstructure:"y"`
	W    float64 `json:"w" mapstructure:"w"`
	H    float64 `json:"h" mapstructure:"h"`
	Page int     `json:"page" mapstructure:"page"`
}

// Table maps template id -> signatory role -> placement.
type Table map[string]map[string]NormalizedRect

// ValidateTable rejects malformed placements before the service starts
// taking traffic.
func ValidateTable(table Table) error {
	for templateID, roles := range table {
		if len(roles) == 0 {
			return fmt.Errorf("template \"%s\" has no role placements", templateID)
		}
		for role, rect := range roles {
			if _, err := types.ParseRole(role); err != nil {
				return fmt.Errorf("template \"%s\": %w", templateID, err)
			}
			if err := validateRect(rect); err != nil {
				return fmt.Errorf("template \"%s\" role \"%s\": %w", templateID, role, err)
			}
		}
	}
	return nil
}

func validateRect(rect NormalizedRect) error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"x", rect.X}, {"y", rect.Y}, {"w", rect.W}, {"h", rect.H},
	} {
		if v.value < 0 || v.value > 1 {
			return fmt.Errorf("%s=%v is outside [0,1]", v.name, v.value)
		}
	}
	if rect.X+rect.W > 1 {
		return fmt.Errorf("x+w=%v exceeds page width", rect.X+rect.W)
	}
	if rect.Y+rect.H > 1 {
		return fmt.Errorf("y+h=%v exceeds page height", rect.Y+rect.H)
	}
	if rect.Page < 1 {
		return fmt.Errorf("page %d is not 1-based", rect.Page)
	}
	return nil
}

type PlacementService interface {
	Resolve(role types.SignatoryRole, templateID string, pdf []byte) (authority.SignRect, error)
}

type BasePlacementService struct {
	table          Table
	fallbackWidth  float64
	fallbackHeight float64
	pdfConf        *model.Configuration
	Logger         logger.Logger
}

func NewPlacementService(table Table, fallbackWidth, fallbackHeight float64, log logger.Logger) (*BasePlacementService, error) {
	if err := ValidateTable(table); err != nil {
		return nil, fmt.Errorf("failed to validate placement table: %w", err)
	}
	if fallbackWidth <= 0 || fallbackHeight <= 0 {
		fallbackWidth = DefaultFallbackWidth
		fallbackHeight = DefaultFallbackHeight
	}
	return &BasePlacementService{
		table:          table,
		fallbackWidth:  fallbackWidth,
		fallbackHeight: fallbackHeight,
		pdfConf:        model.NewDefaultConfiguration(),
		Logger:         log,
	}, nil
}

// Resolve converts the configured normalized placement for (role, template)
// into absolute bottom-left-origin point coordinates on the target document.
// The document may carry extra pages or a different paper size than the
// template assumed, so the true page dimensions are read from the PDF itself.
func (s *BasePlacementService) Resolve(role types.SignatoryRole, templateID string, pdf []byte) (authority.SignRect, error) {
	roles, ok := s.table[templateID]
	if !ok {
		return authority.SignRect{}, fmt.Errorf("%w for template \"%s\"", ErrNoPlacement, templateID)
	}
	rect, ok := roles[string(role)]
	if !ok {
		return authority.SignRect{}, fmt.Errorf("%w for role \"%s\" in template \"%s\"", ErrNoPlacement, role, templateID)
	}

	width, height := s.pageDims(pdf, rect.Page)
	return Convert(rect, width, height), nil
}

func (s *BasePlacementService) pageDims(pdf []byte, page int) (float64, float64) {
	dims, err := api.PageDims(bytes.NewReader(pdf), s.pdfConf)
	if err != nil {
		s.Logger.Log("Failed to inspect page geometry, falling back to %.2fx%.2f: %v",
			s.fallbackWidth, s.fallbackHeight, err)
		return s.fallbackWidth, s.fallbackHeight
	}
	if page > len(dims) {
		s.Logger.Log("Document has %d pages but placement targets page %d, falling back to %.2fx%.2f",
			len(dims), page, s.fallbackWidth, s.fallbackHeight)
		return s.fallbackWidth, s.fallbackHeight
	}
	d := dims[page-1]
	return d.Width, d.Height
}

// Convert flips the vertical axis: normalized coordinates hang from the
// page's top-left corner while PDF points grow from the bottom-left.
func Convert(rect NormalizedRect, pageWidth, pageHeight float64) authority.SignRect {
	x1 := rect.X * pageWidth
	x2 := (rect.X + rect.W) * pageWidth
	y2 := (1 - rect.Y) * pageHeight
	y1 := y2 - rect.H*pageHeight
	return authority.SignRect{
		X1:   x1,
		Y1:   y1,
		X2:   x2,
		Y2:   y2,
		Page: rect.Page,
	}
}
