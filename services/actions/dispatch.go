package actions

import (
	"context"

	"advisordesk/models"
	"advisordesk/utils"

	"go.uber.org/zap"
)

// Runner fans a completed booking out to the configured sinks. Every call
// happens strictly after the booking record exists; failures are collected
// as warnings and never invalidate the booking.
type Runner struct {
	Calendar     CalendarSink
	Sheet        SheetSink
	Email        EmailSink
	AdvisorEmail string
}

// Result aggregates per-sink outcomes for one dispatch.
type Result struct {
	Calendar Outcome  `json:"calendar"`
	Sheet    Outcome  `json:"sheet"`
	Email    Outcome  `json:"email"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *Result) collect(name string, o Outcome) {
	if o.Status == StatusFailed {
		r.Warnings = append(r.Warnings, name+": "+o.Detail)
	}
}

// OnBookingComplete creates the calendar hold, appends the pre-booking row
// and drafts the advisor email for a new booking.
func (rn *Runner) OnBookingComplete(ctx context.Context, record *models.BookingRecord) Result {
	var res Result
	res.Calendar = rn.Calendar.CreateHold(ctx, record)
	res.collect("calendar", res.Calendar)
	res.Sheet = rn.Sheet.AppendRow(ctx, record)
	res.collect("sheet", res.Sheet)
	res.Email = rn.Email.CreateDraft(ctx, record, rn.AdvisorEmail)
	res.collect("email", res.Email)
	rn.log("booking dispatch", record, res)
	return res
}

// OnRescheduleComplete moves the existing hold and updates the row in place.
func (rn *Runner) OnRescheduleComplete(ctx context.Context, record *models.BookingRecord) Result {
	var res Result
	res.Calendar = rn.Calendar.MoveHold(ctx, record)
	res.collect("calendar", res.Calendar)
	res.Sheet = rn.Sheet.UpdateRow(ctx, record)
	res.collect("sheet", res.Sheet)
	res.Email = Outcome{Status: StatusSkipped, Detail: "no email on reschedule"}
	rn.log("reschedule dispatch", record, res)
	return res
}

// OnCancelComplete removes the hold and marks the row cancelled.
func (rn *Runner) OnCancelComplete(ctx context.Context, record *models.BookingRecord) Result {
	var res Result
	res.Calendar = rn.Calendar.DeleteHold(ctx, record)
	res.collect("calendar", res.Calendar)
	res.Sheet = rn.Sheet.UpdateRow(ctx, record)
	res.collect("sheet", res.Sheet)
	res.Email = Outcome{Status: StatusSkipped, Detail: "no email on cancel"}
	rn.log("cancel dispatch", record, res)
	return res
}

func (rn *Runner) log(what string, record *models.BookingRecord, res Result) {
	logger := utils.GetLogger()
	if len(res.Warnings) > 0 {
		logger.Warn(what+" completed with warnings",
			zap.String("code", record.Code),
			zap.Strings("warnings", res.Warnings))
		return
	}
	logger.Info(what+" completed",
		zap.String("code", record.Code),
		zap.String("calendar", string(res.Calendar.Status)),
		zap.String("sheet", string(res.Sheet.Status)),
		zap.String("email", string(res.Email.Status)))
}
