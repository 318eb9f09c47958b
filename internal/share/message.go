// internal/share/message.go
// Package share renders a reservation as WhatsApp-ready plain text.
package share

import (
	"fmt"
	"strings"

	"github.com/dmoren/padelbook/internal/booking"
)

type Mode string

const (
	// ModeStatus lists who is in and how many seats remain.
	ModeStatus Mode = "status"
	// ModeMatches lists each court with its price, payee and roster.
	ModeMatches Mode = "matches"
)

func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeStatus, "":
		return ModeStatus, nil
	case ModeMatches:
		return ModeMatches, nil
	}
	return "", fmt.Errorf("share mode must be %q or %q", ModeStatus, ModeMatches)
}

// Render produces the share text for a reservation in the given mode.
func Render(v booking.View, mode Mode) (string, error) {
	switch mode {
	case ModeStatus:
		return Status(v), nil
	case ModeMatches:
		return Matches(v), nil
	}
	return "", fmt.Errorf("unknown share mode: %q", mode)
}

// Status renders the sign-up state: a numbered list of placed players, how
// many seats remain (or that the reservation is full) and the waitlist.
func Status(v booking.View) string {
	var b strings.Builder
	b.WriteString(header(v))

	players := placedPlayers(v)
	capacity := v.Capacity()

	fmt.Fprintf(&b, "\n👥 *Players (%d/%d):*\n", len(players), capacity)
	if len(players) == 0 {
		b.WriteString("—")
	} else {
		for i, p := range players {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%d. %s", i+1, p)
		}
	}

	if free := capacity - len(players); free > 0 {
		fmt.Fprintf(&b, "\n❗ Missing *%d* players to fill the reservation", free)
	} else {
		b.WriteString("\n✅ *Reservation full!*")
	}

	if len(v.Waitlist) > 0 {
		fmt.Fprintf(&b, "\n\n📋 *Waitlist:*\n%s", strings.Join(v.Waitlist, ", "))
	}

	return b.String()
}

// Matches renders the court breakdown: name, price, payee and roster per
// court.
func Matches(v booking.View) string {
	var b strings.Builder
	b.WriteString(header(v))
	b.WriteString("\n")

	for i, c := range v.Courts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		payTo := c.PayTo
		if payTo == "" {
			payTo = "—"
		}
		roster := "—"
		if len(c.Players) > 0 {
			roster = strings.Join(c.Players, ", ")
		}
		fmt.Fprintf(&b, "🎾 *%s*  |  %s  |  Pay to: *%s*\n%s",
			c.Name, formatPrice(c.PriceCents), payTo, roster)
	}

	return b.String()
}

func header(v booking.View) string {
	return fmt.Sprintf("🎾 *%s*\n📅 %s  |  🕐 %s - %s\n",
		v.Venue, formatDate(v.Date), v.TimeStart, v.TimeEnd)
}

// placedPlayers is the pool followed by every court roster in court order,
// the same reading order a sign-up list uses.
func placedPlayers(v booking.View) []string {
	players := append([]string{}, v.Pool...)
	for _, c := range v.Courts {
		players = append(players, c.Players...)
	}
	return players
}

// formatDate converts "2026-01-29" to "29/01/2026".
func formatDate(iso string) string {
	parts := strings.SplitN(iso, "-", 3)
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

func formatPrice(cents int64) string {
	if cents%100 == 0 {
		return fmt.Sprintf("%d€", cents/100)
	}
	return fmt.Sprintf("%.2f€", float64(cents)/100)
}
