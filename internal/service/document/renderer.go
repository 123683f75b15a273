package document

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"time"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/document"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/shift"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/signature"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// creationDatePattern matches the document metadata stamp the PDF writer
// derives from the wall clock. It is rewritten to the manager approval time
// so rendering stays a pure function of its input.
var creationDatePattern = regexp.MustCompile(`/CreationDate \(D:[0-9]+\)`)

type MarotoRenderer struct{}

// Render implements document.Renderer. Layout runs on a goroutine so the
// context deadline bounds generation time.
func (r *MarotoRenderer) Render(ctx context.Context, in document.RenderInput) ([]byte, error) {
	type renderResult struct {
		data []byte
		err  error
	}

	resultCh := make(chan renderResult, 1)
	go func() {
		data, err := r.render(in)
		resultCh <- renderResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultCh:
		return res.data, res.err
	}
}

func (r *MarotoRenderer) render(in document.RenderInput) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(in.OrgName, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text("Shift Timesheet", props.Text{
					Top:   2,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	})

	r.shiftDetails(m, in)
	r.personnelTable(m, in.Personnel)
	if err := r.signatureBlock(m, "Client Approval", in.ClientSignature); err != nil {
		return nil, err
	}
	if err := r.signatureBlock(m, "Manager Approval", in.ManagerSignature); err != nil {
		return nil, err
	}

	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Timesheet %s", in.TimesheetID), props.Text{
				Top:   3,
				Align: consts.Center,
				Size:  8,
			})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to render timesheet pdf: %w", err)
	}

	return normalizeCreationDate(buf.Bytes(), in.ManagerSignature.CapturedAt), nil
}

func (r *MarotoRenderer) shiftDetails(m pdf.Maroto, in document.RenderInput) {
	jobName := ""
	if in.Shift.JobName != nil {
		jobName = *in.Shift.JobName
	}
	clientName := ""
	if in.Shift.ClientName != nil {
		clientName = *in.Shift.ClientName
	}
	location := "-"
	if in.Shift.Location != nil {
		location = *in.Shift.Location
	}
	crewChief := "-"
	if in.Shift.CrewChiefName != nil {
		crewChief = *in.Shift.CrewChiefName
	}

	details := [][]string{
		{"Job", jobName},
		{"Client", clientName},
		{"Date", in.Shift.Date.Format("2006-01-02")},
		{"Shift Time", fmt.Sprintf("%s - %s",
			in.Shift.StartTime.UTC().Format("15:04"), in.Shift.EndTime.UTC().Format("15:04"))},
		{"Location", location},
		{"Crew Chief", crewChief},
	}

	for _, detail := range details {
		label, value := detail[0], detail[1]
		m.Row(7, func() {
			m.Col(3, func() {
				m.Text(label, props.Text{Style: consts.Bold, Size: 10})
			})
			m.Col(9, func() {
				m.Text(value, props.Text{Size: 10})
			})
		})
	}
	m.Row(4, func() {})
}

func (r *MarotoRenderer) personnelTable(m pdf.Maroto, personnel []shift.AssignedPersonnel) {
	headers := []string{"Employee", "Role", "In 1", "Out 1", "In 2", "Out 2", "In 3", "Out 3", "Hours"}
	gridSizes := []uint{3, 1, 1, 1, 1, 1, 1, 1, 2}

	rows := [][]string{}
	var totalHours float64
	for _, p := range personnel {
		name := p.EmployeeID
		if p.EmployeeName != nil {
			name = *p.EmployeeName
		}

		// one In/Out column pair per possible entry; blank when unused,
		// "(open)" while a pair is still clocked in
		pairs := []string{"", "", "", "", "", ""}
		for _, e := range p.TimeEntries {
			if e.EntryNumber < 1 || e.EntryNumber > 3 {
				continue
			}
			idx := (e.EntryNumber - 1) * 2
			pairs[idx] = e.ClockIn.UTC().Format("15:04")
			pairs[idx+1] = "(open)"
			if e.ClockOut != nil {
				pairs[idx+1] = e.ClockOut.UTC().Format("15:04")
			}
		}

		hours := shift.TotalHours(p.TimeEntries)
		totalHours += hours

		row := append([]string{name, p.RoleCode}, pairs...)
		row = append(row, fmt.Sprintf("%.2f", hours))
		rows = append(rows, row)
	}

	m.TableList(headers, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      9,
			GridSizes: gridSizes,
		},
		ContentProp: props.TableListContent{
			Size:      9,
			GridSizes: gridSizes,
		},
		Align:                consts.Left,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
		Line:                 false,
	})

	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Total Hours: %.2f", totalHours), props.Text{
				Top:   2,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  10,
			})
		})
	})
}

func (r *MarotoRenderer) signatureBlock(m pdf.Maroto, title string, att signature.Attestation) error {
	extension := consts.Png
	if att.ContentType == "image/jpeg" {
		extension = consts.Jpg
	}
	encoded := base64.StdEncoding.EncodeToString(att.Image)

	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(title, props.Text{Top: 3, Style: consts.Bold, Size: 11})
		})
	})
	var imageErr error
	m.Row(28, func() {
		m.Col(6, func() {
			imageErr = m.Base64Image(encoded, extension, props.Rect{
				Center:  false,
				Percent: 80,
			})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Signed by %s (%s)", att.ActorID, att.ActorRole), props.Text{
				Top:  5,
				Size: 9,
			})
			m.Text(fmt.Sprintf("Captured at %s", att.CapturedAt.UTC().Format(time.RFC3339)), props.Text{
				Top:  11,
				Size: 9,
			})
		})
	})
	if imageErr != nil {
		return fmt.Errorf("failed to place %s signature image: %w", title, imageErr)
	}
	return nil
}

func normalizeCreationDate(pdfBytes []byte, approvedAt time.Time) []byte {
	stamp := fmt.Sprintf("/CreationDate (D:%s)", approvedAt.UTC().Format("20060102150405"))
	return creationDatePattern.ReplaceAll(pdfBytes, []byte(stamp))
}

func NewMarotoRenderer() document.Renderer {
	return &MarotoRenderer{}
}
