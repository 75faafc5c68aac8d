// Package format turns raw bill fields into the strings shown in the bill list.
package format

import (
	"fmt"
	"time"

	"billed/internal/model"
)

var months = [...]string{"Jan", "Fév", "Mar", "Avr", "Mai", "Jui", "Jui", "Aoû", "Sep", "Oct", "Nov", "Déc"}

var dateLayouts = []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05"}

// Date renders an ISO date as "4 Avr. 04".
func Date(raw string) (string, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return fmt.Sprintf("%d %s. %02d", t.Day(), months[t.Month()-1], t.Year()%100), nil
	}
	return "", fmt.Errorf("invalid date %q", raw)
}

func Status(s model.Status) string {
	switch s {
	case model.StatusPending:
		return "En attente"
	case model.StatusAccepted:
		return "Accepté"
	case model.StatusRefused:
		return "Refusé"
	default:
		return string(s)
	}
}
