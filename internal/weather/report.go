package weather

import (
	"fmt"
	"time"

	"github.com/jask/widgetbox/internal/format"
)

// IconURL is the image for the report's icon code, empty when there is none.
func (r Report) IconURL() string {
	if r.Icon == "" {
		return ""
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", r.Icon)
}

// Place is "City, CC" or just the city when the country is unknown.
func (r Report) Place() string {
	if r.Country == "" {
		return r.Location
	}
	return r.Location + ", " + r.Country
}

// Lines renders the card's commentary in display order. now decides the
// day/night line.
func (r Report) Lines(now time.Time) []string {
	return []string{
		format.TemperatureMessage(float64(r.Temperature), r.Unit),
		format.WeatherMessage(r.Description),
		format.LocationMessage(r.Place(), now.Hour()),
		format.WindMessage(r.WindSpeed, r.WindDeg),
		format.PressureMessage(r.Pressure),
		format.HumidityMessage(r.Humidity),
		format.SeaLevelMessage(r.SeaLevel),
		format.CoordinatesMessage(r.Latitude, r.Longitude),
	}
}
