package format

// Icon is the pictogram bucket for a weather code.
type Icon int

const (
	Unspecified Icon = iota
	Clear
	PartlyCloudy
	Overcast
	Fog
	Rain
	Snow
	Thunderstorm
)

var iconNames = map[Icon]string{
	Unspecified:  "unspecified",
	Clear:        "clear",
	PartlyCloudy: "partly-cloudy",
	Overcast:     "overcast",
	Fog:          "fog",
	Rain:         "rain",
	Snow:         "snow",
	Thunderstorm: "thunderstorm",
}

var iconEmoji = map[Icon]string{
	Unspecified:  "🌡️",
	Clear:        "☀️",
	PartlyCloudy: "🌤️",
	Overcast:     "☁️",
	Fog:          "🌫️",
	Rain:         "🌧️",
	Snow:         "🌨️",
	Thunderstorm: "⛈️",
}

func (i Icon) String() string {
	if s, ok := iconNames[i]; ok {
		return s
	}
	return iconNames[Unspecified]
}

// Emoji is the glyph shown for the bucket in text surfaces.
func (i Icon) Emoji() string {
	if s, ok := iconEmoji[i]; ok {
		return s
	}
	return iconEmoji[Unspecified]
}

type codeInfo struct {
	text string
	icon Icon
}

// weatherCodes is the WMO interpretation table used by the forecast provider.
var weatherCodes = map[int]codeInfo{
	0:  {"Clear", Clear},
	1:  {"Mainly clear", PartlyCloudy},
	2:  {"Partly cloudy", PartlyCloudy},
	3:  {"Overcast", Overcast},
	45: {"Fog", Fog},
	48: {"Depositing rime fog", Fog},
	51: {"Light drizzle", Rain},
	53: {"Drizzle", Rain},
	55: {"Heavy drizzle", Rain},
	56: {"Freezing drizzle", Rain},
	57: {"Freezing drizzle", Rain},
	61: {"Light rain", Rain},
	63: {"Rain", Rain},
	65: {"Heavy rain", Rain},
	66: {"Freezing rain", Rain},
	67: {"Freezing rain", Rain},
	71: {"Light snow", Snow},
	73: {"Snow", Snow},
	75: {"Heavy snow", Snow},
	77: {"Snow grains", Snow},
	80: {"Rain showers", Rain},
	81: {"Rain showers", Rain},
	82: {"Violent rain showers", Rain},
	85: {"Snow showers", Snow},
	86: {"Snow showers", Snow},
	95: {"Thunderstorm", Thunderstorm},
	96: {"Thunderstorm w/ hail", Thunderstorm},
	99: {"Thunderstorm w/ heavy hail", Thunderstorm},
}

// KnownCodes lists every code with a text and icon mapping.
func KnownCodes() []int {
	codes := make([]int, 0, len(weatherCodes))
	for c := range weatherCodes {
		codes = append(codes, c)
	}
	return codes
}

// WeatherText returns a short English phrase for code.
func WeatherText(code *int) string {
	if code == nil {
		return Placeholder
	}
	if info, ok := weatherCodes[*code]; ok {
		return info.text
	}
	return Placeholder
}

// IconFor returns the pictogram bucket for code.
func IconFor(code *int) Icon {
	if code == nil {
		return Unspecified
	}
	if info, ok := weatherCodes[*code]; ok {
		return info.icon
	}
	return Unspecified
}
