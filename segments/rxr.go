package segments

import (
	"fmt"

	"github.com/corvushealth/hl7gateway/hl7"
)

// RXR represents the Pharmacy/Treatment Route segment.
// This segment carries the route, site, and administration device for a
// pharmacy order. An order may carry more than one RXR segment when a
// medication can be given by more than one route.
//
// Field positions follow the HL7 standard where RXR-1 is the first field
// after the segment name.
type RXR struct {
	// Route is RXR-1: Route (CE - Coded Element, e.g. PO, IV, IM).
	Route string `hl7:"RXR.1"`

	// AdministrationSite is RXR-2: Administration site (CE).
	AdministrationSite string `hl7:"RXR.2"`

	// AdministrationDevice is RXR-3: Administration device (CE).
	AdministrationDevice string `hl7:"RXR.3"`

	// AdministrationMethod is RXR-4: Administration method (CE).
	AdministrationMethod string `hl7:"RXR.4"`

	// RoutingInstruction is RXR-5: Routing instruction (CE).
	RoutingInstruction string `hl7:"RXR.5"`

	// AdministrationSiteModifier is RXR-6: Administration site modifier (CE).
	AdministrationSiteModifier string `hl7:"RXR.6"`
}

// ErrNotRXRSegment indicates the segment is not an RXR segment.
var ErrNotRXRSegment = fmt.Errorf("segment is not RXR")

// ParseRXR extracts field values from an hl7.Segment into an RXR struct.
// Returns an error if the segment is nil or not an RXR segment.
func ParseRXR(seg hl7.Segment) (*RXR, error) {
	if seg == nil {
		return nil, ErrNilSegment
	}

	if seg.Name() != "RXR" {
		return nil, fmt.Errorf("%w: got %s", ErrNotRXRSegment, seg.Name())
	}

	rxr := &RXR{
		Route:                      getFieldValue(seg, 1),
		AdministrationSite:         getFieldValue(seg, 2),
		AdministrationDevice:       getFieldValue(seg, 3),
		AdministrationMethod:       getFieldValue(seg, 4),
		RoutingInstruction:         getFieldValue(seg, 5),
		AdministrationSiteModifier: getFieldValue(seg, 6),
	}

	return rxr, nil
}

// ToSegment converts the RXR struct into an hl7.Segment.
// The delims parameter specifies the delimiters to use for encoding.
// If delims is nil, default delimiters are used.
func (r *RXR) ToSegment(delims *hl7.Delimiters) (hl7.Segment, error) {
	if delims == nil {
		delims = hl7.DefaultDelimiters()
	}

	fields := []string{
		r.Route,
		r.AdministrationSite,
		r.AdministrationDevice,
		r.AdministrationMethod,
		r.RoutingInstruction,
		r.AdministrationSiteModifier,
	}

	data := buildSegmentData("RXR", fields, delims)

	seg, err := hl7.ParseSegment([]rune(data), delims)
	if err != nil {
		return nil, fmt.Errorf("failed to create RXR segment: %w", err)
	}

	return seg, nil
}
