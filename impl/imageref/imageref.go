package imageref

import "strings"

// RefType differentiates a pull by tag vs. digest.
type RefType int

const (
	ByTag RefType = iota
	ByDigest
)

// ImageSpec is one entry from the image list. If initialized with name 'samtools'
// and reference 'quay.io/biocontainers/samtools:1.2-0' then the struct members
// are like so:
//
//	Name      = samtools
//	Reference = quay.io/biocontainers/samtools:1.2-0
//	Type      = ByTag
//
// The struct is immutable once created - the batch runner builds a new instance
// if a digest is substituted for a tag.
type ImageSpec struct {
	// Name labels the image in the list. For a bare list entry it is the same
	// as the reference.
	Name string
	// Reference is the registry/tag or digest-qualified locator without any
	// transport prefix.
	Reference string
	// Type is ByDigest if the reference is digest-qualified, else ByTag.
	Type RefType
}

// New returns an 'ImageSpec' struct from the passed args, classifying the
// reference as a tag ref or a digest ref.
func New(name string, reference string) ImageSpec {
	return ImageSpec{
		Name:      name,
		Reference: reference,
		Type:      typeFromRef(reference),
	}
}

// Locator formats the instance as a source locator for the external pull
// tool by prepending the passed transport prefix, e.g. 'docker://alpine:latest'.
func (s ImageSpec) Locator(prefix string) string {
	return prefix + s.Reference
}

// typeFromRef looks at the passed 'ref' and if it's a digest ref then returns
// 'ByDigest' else returns 'ByTag'.
func typeFromRef(ref string) RefType {
	if strings.Contains(ref, "@") {
		return ByDigest
	}
	return ByTag
}
