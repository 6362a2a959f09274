package model

// Report mirrors the weatherapi.com current.json payload.
// Only the fields the UI shows are kept.
type Report struct {
	Location Location `json:"location" mapstructure:"location"`
	Current  Current  `json:"current" mapstructure:"current"`
}

// Location describes where the conditions were measured.
type Location struct {
	Name      string  `json:"name" mapstructure:"name"`
	Region    string  `json:"region" mapstructure:"region"`
	Country   string  `json:"country" mapstructure:"country"`
	Lat       float64 `json:"lat" mapstructure:"lat"`
	Lon       float64 `json:"lon" mapstructure:"lon"`
	Localtime string  `json:"localtime" mapstructure:"localtime"`
}

// Current is the current-conditions descriptor.
type Current struct {
	LastUpdated string    `json:"last_updated" mapstructure:"last_updated"`
	TempC       float64   `json:"temp_c" mapstructure:"temp_c"`
	TempF       float64   `json:"temp_f" mapstructure:"temp_f"`
	FeelsLikeC  float64   `json:"feelslike_c" mapstructure:"feelslike_c"`
	IsDay       int       `json:"is_day" mapstructure:"is_day"`
	Condition   Condition `json:"condition" mapstructure:"condition"`
	WindKPH     float64   `json:"wind_kph" mapstructure:"wind_kph"`
	WindDir     string    `json:"wind_dir" mapstructure:"wind_dir"`
	Humidity    int       `json:"humidity" mapstructure:"humidity"`
	UV          float64   `json:"uv" mapstructure:"uv"`
}

type Condition struct {
	Text string `json:"text" mapstructure:"text"`
	Icon string `json:"icon" mapstructure:"icon"`
	Code int    `json:"code" mapstructure:"code"`
}

// Empty reports whether no payload has been loaded yet.
func (r Report) Empty() bool { return r.Location.Name == "" }
