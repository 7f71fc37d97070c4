package profile

import (
	"fmt"
	"strconv"
	"strings"

	"fitprofile/internal/healthstore"
)

const (
	PlaceholderUnavailable = "—"
	PlaceholderNoData      = "No Data"
)

type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

func ParseUnits(s string) (Units, error) {
	switch Units(strings.ToLower(strings.TrimSpace(s))) {
	case UnitsMetric:
		return UnitsMetric, nil
	case UnitsImperial:
		return UnitsImperial, nil
	}
	return "", fmt.Errorf("unknown unit system %q", s)
}

type RowKey string

const (
	RowAge    RowKey = "age"
	RowHeight RowKey = "height"
	RowWeight RowKey = "weight"
	RowBMI    RowKey = "bmi"
)

// Row is one line of the profile list.
type Row struct {
	Key       RowKey `json:"key"`
	Title     string `json:"title"`
	Value     string `json:"value"`
	Detail    string `json:"detail,omitempty"`
	Available bool   `json:"available"`
}

// Render produces the Age, Height, Weight and BMI rows, in that order.
// Every row is a placeholder unless the state is loaded.
func Render(st State, units Units) []Row {
	rows := []Row{
		{Key: RowAge, Title: "Age"},
		{Key: RowHeight, Title: "Height"},
		{Key: RowWeight, Title: "Weight"},
		{Key: RowBMI, Title: "BMI"},
	}

	if st.Status() != StatusLoaded {
		for i := range rows {
			rows[i].Value = PlaceholderUnavailable
		}
		return rows
	}

	if age, ok := st.Age(); ok {
		rows[0].Value, rows[0].Available = strconv.Itoa(age), true
	} else {
		rows[0].Value = PlaceholderNoData
	}

	if h, ok := st.Height(); ok {
		rows[1].Value, rows[1].Available = formatHeight(h, units), true
	} else {
		rows[1].Value = PlaceholderNoData
	}

	if w, ok := st.Weight(); ok {
		rows[2].Value, rows[2].Available = formatWeight(w, units), true
	} else {
		rows[2].Value = PlaceholderNoData
	}

	if bmi, ok := st.BMI(); ok {
		rows[3].Value = strconv.FormatFloat(bmi, 'f', 1, 64)
		rows[3].Detail = string(Category(bmi))
		rows[3].Available = true
	} else {
		rows[3].Value = PlaceholderUnavailable
	}

	return rows
}

func formatHeight(m float64, units Units) string {
	if units == UnitsImperial {
		feet, inches := healthstore.MetersToFeetInches(m)
		return fmt.Sprintf("%d' %d\"", feet, inches)
	}
	return fmt.Sprintf("%.2f m", m)
}

func formatWeight(kg float64, units Units) string {
	if units == UnitsImperial {
		return fmt.Sprintf("%.1f lb", healthstore.KilogramsToPounds(kg))
	}
	return fmt.Sprintf("%.1f kg", kg)
}
