package conversation

import (
	"fmt"
	"strings"

	"advisordesk/models"
	"advisordesk/services/nlp"
)

// Reply templates. Kept in one place so the handler surface and the voice
// bridge read the same wording.

const (
	msgGreeting = "Hello! I can help you book, reschedule, or cancel an advisor appointment, " +
		"check availability, or tell you how to prepare. " +
		"Please note: advisors share general guidance only, not personalised investment advice. " +
		"What would you like to do?"

	msgAskIntent = "Sorry, I didn't catch that. You can say things like " +
		"\"book an appointment\", \"reschedule my booking\", or \"cancel my booking\"."

	msgPleasantryReply = "Hello! How can I help? You can say things like " +
		"\"book an appointment\", \"reschedule my booking\", or \"cancel my booking\"."

	msgAskBookingCode = "Sure. What is your booking code? It looks like NL-A123."

	msgCodeNotFound = "I couldn't find a booking with that code. Could you check it and try again?"

	msgAskTimeRange = "Which day or time window should I check? For example \"Friday\" or \"4 February afternoon\"."

	msgAskNewTime = "No problem. What day and time would work instead?"

	msgBadDateTime = "Sorry, I couldn't work out the day and time from that. " +
		"Try something like \"Friday at 10am\" or \"4 February afternoon\"."

	msgPastTime = "That time has already passed. Could you pick a day and time in the future?"

	msgNoAvailability = "I don't have any open slots near that time. Could you try a different day or time?"

	msgSlotTaken = "Sorry, that slot was taken just now."

	msgAmbiguousChoice = "Please say \"first\", \"second\", or \"none\" if neither works."

	msgAmbiguousConfirm = "Sorry, was that a yes or a no?"

	msgCancelKept = "Alright, your booking stays as it is. Anything else I can help with?"

	msgAbandoned = "I'm having trouble understanding. Let's stop here; please call back or reach us by email and we'll sort it out."

	msgPrepareChecklist = "To get the most out of your advisor call, keep these handy: " +
		"your PAN and a government ID, recent account or folio statements, " +
		"a note of your financial goals and time horizon, and any questions you want answered. " +
		"Anything else I can help with?"
)

func promptTopicMenu() string {
	return fmt.Sprintf("What would you like to discuss? I can book you in for: %s.",
		strings.Join(nlp.TopicLabels(), ", "))
}

func promptTimeForTopic(topic string, horizonDays int) string {
	return fmt.Sprintf("Got it, %s. What day and time suit you? "+
		"Advisors are available Tuesday to Saturday, 9am to 5pm, within the next %d days.",
		topic, horizonDays)
}

func promptBeyondHorizon(horizonDays int) string {
	return fmt.Sprintf("I can only book within the next %d days. Could you pick an earlier day?", horizonDays)
}

func promptOffer(slots []models.CalendarSlot, tzLabel string) string {
	if len(slots) == 1 {
		return fmt.Sprintf("The closest open slot is %s. Shall I book that one, or say \"none\" for a different time?",
			slots[0].Label(tzLabel))
	}
	return fmt.Sprintf("The closest open slots are: first, %s; second, %s. "+
		"Which works for you? Say \"first\", \"second\", or \"none\".",
		slots[0].Label(tzLabel), slots[1].Label(tzLabel))
}

func promptConfirm(topic string, slot models.CalendarSlot, tzLabel string) string {
	return fmt.Sprintf("To confirm: a %s appointment on %s. Shall I book it?",
		topic, slot.Label(tzLabel))
}

func promptConfirmReschedule(code string, slot models.CalendarSlot, tzLabel string) string {
	return fmt.Sprintf("To confirm: move booking %s to %s. Shall I go ahead?",
		code, slot.Label(tzLabel))
}

func promptConfirmCancel(rec *models.BookingRecord, tzLabel string) string {
	return fmt.Sprintf("You'd like to cancel booking %s, %s on %s. Are you sure?",
		rec.Code, rec.Topic.Label, rec.Slot.Label(tzLabel))
}

func promptBooked(rec *models.BookingRecord, tzLabel string) string {
	return fmt.Sprintf("Done! Your %s appointment is booked for %s. "+
		"Your booking code is %s; you'll need it to reschedule or cancel. See you then!",
		rec.Topic.Label, rec.Slot.Label(tzLabel), rec.Code)
}

func promptRescheduled(rec *models.BookingRecord, tzLabel string) string {
	return fmt.Sprintf("All set. Booking %s has been moved to %s. See you then!",
		rec.Code, rec.Slot.Label(tzLabel))
}

func promptCancelled(rec *models.BookingRecord) string {
	return fmt.Sprintf("Your booking %s has been cancelled. "+
		"You're welcome to book again any time. Take care!", rec.Code)
}

func promptAvailabilityList(slots []models.CalendarSlot, tzLabel string) string {
	labels := make([]string, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, s.Label(tzLabel))
	}
	return fmt.Sprintf("Here's what's open: %s. Say \"book an appointment\" if you'd like one of these.",
		strings.Join(labels, "; "))
}

func promptNoAvailabilityInWindow() string {
	return "Nothing is open in that window. Would you like me to check a different day?"
}
