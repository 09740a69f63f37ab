package pdfexport

import (
	"bytes"
	"fmt"
	"hirex-backend/models"
	jobdescriptionapimodels "hirex-backend/models/api/job-description"
	"strings"
	"text/template"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const dateLayout = "02 Jan 2006"

const jobDescriptionTemplate = `<b>Job Requisition:</b> {{.JrID}}<br>
<b>Positions:</b> {{.NumberOfPositions}}<br>
<b>Experience:</b> {{experience .MinExperience .MaxExperience}}<br>
<b>Locations:</b> {{list .WorkLocations}}<br>
<b>Work arrangement:</b> {{text .WorkArrangement}}<br>
<b>Shift:</b> {{text .Shift}}<br>
<b>Onboarding:</b> {{date .OnboardingFrom}} - {{date .OnboardingTo}}<br>
<br>
<b>Primary skills:</b> {{list .PrimarySkills}}<br>
<b>Secondary skills:</b> {{list .SecondarySkills}}<br>
<b>Qualifications:</b> {{list .Qualifications}}<br>
<br>
<b>Job purpose</b><br>
{{text .JobPurpose}}<br>
<br>
<b>Duties and responsibilities</b><br>
{{text .Duties}}<br>
<br>
<b>Job specification</b><br>
{{text .JobSpecification}}<br>
`

var tplFuncs = template.FuncMap{
	"text": func(value interface{}) string {
		return plain(fmt.Sprint(value))
	},
	"list": func(items []string) string {
		cleaned := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				cleaned = append(cleaned, plain(item))
			}
		}
		if len(cleaned) == 0 {
			return models.NotSpecified
		}
		return strings.Join(cleaned, ", ")
	},
	"experience": func(minYears, maxYears *int) string {
		if minYears == nil && maxYears == nil {
			return models.NotSpecified
		}
		return fmt.Sprintf("%d–%d years", intValue(minYears), intValue(maxYears))
	},
	"date": func(value *time.Time) string {
		if value == nil {
			return "?"
		}
		return value.Format(dateLayout)
	},
}

// GenerateJobDescription renders the job description as an A4 document.
func GenerateJobDescription(jd jobdescriptionapimodels.JobDescriptionView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateJobDescription panic recover: %v", r)
		}
	}()
	tpl, err := template.New("job_description").Funcs(tplFuncs).Parse(jobDescriptionTemplate)
	if err != nil {
		return nil, err
	}
	body := new(bytes.Buffer)
	err = tpl.Execute(body, jd)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(jd.JrID, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("HireX - %s - page %d", jd.JrID, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, tr(jd.JobTitle), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	_, lineHt := pdf.GetFontSize()
	html := pdf.HTMLBasicNew()
	html.Write(lineHt*1.5, tr(body.String()))
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// plain drops angle brackets so user text is never read as markup.
func plain(value string) string {
	return strings.NewReplacer("<", "(", ">", ")").Replace(value)
}

func intValue(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}
