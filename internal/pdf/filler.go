// internal/pdf/filler.go
package pdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"notion-pdf-service/internal/common/logger"
	"notion-pdf-service/internal/template"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Filler writes values into a template's AcroForm text fields through
// pdfcpu. It is stateless; one instance serves all requests.
type Filler struct {
	logger logger.Logger
}

func NewFiller(log logger.Logger) *Filler {
	return &Filler{
		logger: log.WithFields(map[string]interface{}{"component": "pdf-filler"}),
	}
}

// pdfcpu form-fill JSON, the same shape `pdfcpu form export` produces.
type formTextField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type formGroup struct {
	TextFields []formTextField `json:"textfield"`
}

type formData struct {
	Forms []formGroup `json:"forms"`
}

// Fill loads the template PDF and fills its form fields with the given
// ordered values, returning the filled document bytes.
func (f *Filler) Fill(templatePath string, fields []template.FieldValue) ([]byte, error) {
	src, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}

	group := formGroup{TextFields: make([]formTextField, 0, len(fields))}
	for _, fv := range fields {
		group.TextFields = append(group.TextFields, formTextField{
			Name:  fv.Name,
			Value: NormalizeRTL(fv.Value),
		})
	}

	formJSON, err := json.Marshal(formData{Forms: []formGroup{group}})
	if err != nil {
		return nil, fmt.Errorf("marshal form data: %w", err)
	}

	f.logger.Debug("filling form", map[string]interface{}{
		"template": templatePath,
		"fields":   len(fields),
	})

	// pdfcpu mutates the configuration during FillForm, so every call gets
	// its own instance; sharing one across request goroutines races.
	conf := model.NewDefaultConfiguration()

	var out bytes.Buffer
	if err := api.FillForm(bytes.NewReader(src), bytes.NewReader(formJSON), &out, conf); err != nil {
		return nil, fmt.Errorf("fill form: %w", err)
	}

	return out.Bytes(), nil
}
