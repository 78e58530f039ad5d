// Package render implements the PDF rendering pipeline: template expansion,
// asset downloads, typesetting, object-store uploads and callback reporting.
package render

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// DocumentSpec is the public request body for render and preview jobs.
type DocumentSpec struct {
	TemplateURL    string   `json:"template_url"`
	AssetsURLs     []string `json:"assets_urls"`
	Variables      any      `json:"variables"`
	OutputFilename string   `json:"output_filename"`
	CallbackURL    string   `json:"callback_url"`
	NoEscapeLatex  bool     `json:"no_escape_latex"`
}

// Validate checks the full spec as required for a render job.
func (s *DocumentSpec) Validate() error {
	if err := validateAbsoluteURL(s.TemplateURL, "template_url"); err != nil {
		return err
	}
	for _, u := range s.AssetsURLs {
		if err := validateAbsoluteURL(u, "assets_urls"); err != nil {
			return err
		}
	}
	if err := validateAbsoluteURL(s.CallbackURL, "callback_url"); err != nil {
		return err
	}
	return validateOutputFilename(s.OutputFilename)
}

// ValidatePreview checks only the fields the preview pipeline consumes.
func (s *DocumentSpec) ValidatePreview() error {
	return validateAbsoluteURL(s.TemplateURL, "template_url")
}

// TexFilename is the typesetter source filename: output_filename with its
// .pdf extension replaced by .tex.
func (s *DocumentSpec) TexFilename() string {
	return strings.TrimSuffix(s.OutputFilename, ".pdf") + ".tex"
}

func validateAbsoluteURL(raw, field string) error {
	if raw == "" {
		return errors.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrapf(err, "%s is not a valid URL", field)
	}
	if !u.IsAbs() {
		return errors.Errorf("%s must be an absolute URL", field)
	}
	return nil
}

func validateOutputFilename(name string) error {
	if name == "" {
		return errors.New("output_filename is required")
	}
	if !strings.HasSuffix(name, ".pdf") || name == ".pdf" {
		return errors.Errorf("output_filename %q must end in .pdf", name)
	}
	// reject path traversal
	if strings.ContainsAny(name, `/\`) {
		return errors.Errorf("output_filename %q must not contain path separators", name)
	}
	return nil
}
