package format

import (
	"fmt"
	"math"
	"strings"
)

// TemperatureMessage comments on a temperature. Only Celsius gets commentary;
// other units are echoed.
func TemperatureMessage(t float64, unit string) string {
	if unit != "C" {
		return fmt.Sprintf("%s°%s", Number(t), unit)
	}
	v := Number(t)
	switch {
	case t < 0:
		return fmt.Sprintf("It's freezing at %s°C! Bundle up!", v)
	case t < 10:
		return fmt.Sprintf("It's quite cold at %s°C. Wear warm clothes.", v)
	case t < 20:
		return fmt.Sprintf("The temperature is %s°C. Comfortable for a light jacket.", v)
	case t < 30:
		return fmt.Sprintf("It's a pleasant %s°C. Enjoy the nice weather!", v)
	default:
		return fmt.Sprintf("It's hot at %s°C. Stay hydrated!", v)
	}
}

var weatherMessages = map[string]string{
	"sunny":         "It's a beautiful sunny day!",
	"partly cloudy": "Expect some clouds and sunshine.",
	"cloudy":        "It's cloudy today.",
	"overcast":      "The sky is overcast.",
	"rain":          "Don't forget your umbrella! It's raining.",
	"thunderstorm":  "Thunderstorms are expected today.",
	"snow":          "Bundle up! It's snowing.",
	"mist":          "It's misty outside.",
	"fog":           "Be careful, there's fog outside.",
}

// WeatherMessage maps a description to a sentence, echoing unknown descriptions.
func WeatherMessage(description string) string {
	if msg, ok := weatherMessages[strings.ToLower(strings.TrimSpace(description))]; ok {
		return msg
	}
	return description
}

// LocationMessage says whether it is day or night at location. Night is
// 18:00 up to 06:00.
func LocationMessage(location string, hour int) string {
	if hour >= 18 || hour < 6 {
		return "Night Time in " + location
	}
	return "Day Time in " + location
}

var compassPoints = [8]string{
	"North", "North-East", "East", "South-East",
	"South", "South-West", "West", "North-West",
}

// WindDirection buckets degrees into 8 compass points, 45° each, centred on
// the point: North is [337.5, 360) ∪ [0, 22.5), North-East [22.5, 67.5), and
// so on. Lower bounds are inclusive, upper bounds exclusive.
func WindDirection(deg float64) string {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	idx := int(math.Floor((d+22.5)/45)) % 8
	return compassPoints[idx]
}

// WindMessage describes wind speed in m/s and its direction.
func WindMessage(speed, deg float64) string {
	dir := WindDirection(deg)
	s := Number(speed)
	switch {
	case speed < 1:
		return "Calm winds with barely any movement."
	case speed < 5:
		return fmt.Sprintf("A light breeze from the %s.", dir)
	case speed < 10:
		return fmt.Sprintf("Gentle wind at %s m/s blowing from the %s.", s, dir)
	case speed < 20:
		return fmt.Sprintf("Moderate wind at %s m/s coming from the %s.", s, dir)
	default:
		return fmt.Sprintf("Strong winds at %s m/s from the %s.", s, dir)
	}
}

// PressureMessage comments on atmospheric pressure in hPa.
func PressureMessage(hpa float64) string {
	v := Number(hpa)
	switch {
	case hpa < 1000:
		return fmt.Sprintf("Low atmospheric pressure at %s hPa, conditions might be stormy.", v)
	case hpa < 1020:
		return fmt.Sprintf("Normal atmospheric pressure at %s hPa.", v)
	default:
		return fmt.Sprintf("High atmospheric pressure at %s hPa, expect clear skies.", v)
	}
}

// HumidityMessage comments on relative humidity in percent.
func HumidityMessage(pct float64) string {
	v := Number(pct)
	switch {
	case pct < 30:
		return fmt.Sprintf("Low humidity at %s %%. The air might feel dry.", v)
	case pct < 60:
		return fmt.Sprintf("Comfortable humidity at %s %%.", v)
	default:
		return fmt.Sprintf("High humidity at %s %%. It may feel muggy.", v)
	}
}

// SeaLevelAverage is the standard sea level pressure in hPa.
const SeaLevelAverage = 1013

// SeaLevelMessage compares sea level pressure to the standard. Some stations
// do not report it; pass nil then.
func SeaLevelMessage(hpa *float64) string {
	if hpa == nil {
		return "Sea level data is not available."
	}
	v := Number(*hpa)
	switch {
	case *hpa < SeaLevelAverage:
		return fmt.Sprintf("Below average sea level pressure at %s hPa.", v)
	case *hpa == SeaLevelAverage:
		return fmt.Sprintf("Average sea level pressure at %s hPa.", v)
	default:
		return fmt.Sprintf("Above average sea level pressure at %s hPa.", v)
	}
}

// CoordinatesMessage prints coordinates to two decimals. A zero coordinate is
// treated as missing.
func CoordinatesMessage(lat, lon float64) string {
	if lat == 0 || lon == 0 {
		return "Coordinates data not available."
	}
	return fmt.Sprintf("Location coordinates: Latitude %.2f, Longitude %.2f", lat, lon)
}
