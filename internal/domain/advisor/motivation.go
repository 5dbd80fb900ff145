package advisor

import "time"

// MotivationFor picks the dashboard message for a visit count.
func MotivationFor(attendanceCount int) string {
	switch {
	case attendanceCount <= 0:
		return "The journey of a thousand miles begins with a single step. Start today!"
	case attendanceCount < 5:
		return "Consistency is key. Keep showing up, and results will follow!"
	case attendanceCount < 10:
		return "Progress is progress, no matter how small. You're doing great!"
	case attendanceCount < 20:
		return "Your dedication is inspiring! Keep pushing your limits!"
	default:
		return "You're a fitness warrior! Your commitment is truly remarkable!"
	}
}

var quotes = []string{
	"The only bad workout is the one that didn't happen.",
	"Your body can stand almost anything. It's your mind that you have to convince.",
	"The hard days are the best because that's when champions are made.",
	"Success isn't always about greatness. It's about consistency.",
	"The difference between the impossible and the possible lies in a person's determination.",
	"Don't count the days, make the days count.",
	"The clock is ticking. Are you becoming the person you want to be?",
	"The pain you feel today will be the strength you feel tomorrow.",
}

// Quotes returns a copy of the quote table.
func Quotes() []string {
	return append([]string(nil), quotes...)
}

// QuoteOfTheDay rotates through the quote table by day of year.
// INVARIANT: the same calendar day always gets the same quote
func QuoteOfTheDay(day time.Time) string {
	return quotes[(day.YearDay()-1)%len(quotes)]
}
