package domain

// Source file layout. Lines [0, PreambleLines) are never data and the
// reading columns start at FirstFieldIndex of the split row.
const (
	PreambleLines   = 17
	FirstFieldIndex = 16
	FieldCount      = 12
)

// FieldNames lists the reading columns in file order.
var FieldNames = [FieldCount]string{
	"pressure",
	"relative_humidity",
	"temperature",
	"wind_direction",
	"wind_speed",
	"chp1",
	"direct_sun",
	"global_sun",
	"diffuse_sun",
	"rain_fall",
	"all_day_illumination",
	"pm25",
}

// Record is one weather station reading forwarded to the collector.
// Timestamp is the capture instant (RFC 3339), not the sensor instant.
type Record struct {
	Pressure           float64 `json:"pressure"`
	RelativeHumidity   float64 `json:"relative_humidity"`
	Temperature        float64 `json:"temperature"`
	WindDirection      float64 `json:"wind_direction"`
	WindSpeed          float64 `json:"wind_speed"`
	CHP1               float64 `json:"chp1"`
	DirectSun          float64 `json:"direct_sun"`
	GlobalSun          float64 `json:"global_sun"`
	DiffuseSun         float64 `json:"diffuse_sun"`
	RainFall           float64 `json:"rain_fall"`
	AllDayIllumination float64 `json:"all_day_illumination"`
	PM25               float64 `json:"pm25"`
	Timestamp          string  `json:"timestamp"`
}

// Fields returns pointers to the numeric fields in FieldNames order.
func (r *Record) Fields() [FieldCount]*float64 {
	return [FieldCount]*float64{
		&r.Pressure,
		&r.RelativeHumidity,
		&r.Temperature,
		&r.WindDirection,
		&r.WindSpeed,
		&r.CHP1,
		&r.DirectSun,
		&r.GlobalSun,
		&r.DiffuseSun,
		&r.RainFall,
		&r.AllDayIllumination,
		&r.PM25,
	}
}

// Values returns a copy of the numeric fields in FieldNames order.
func (r *Record) Values() [FieldCount]float64 {
	var out [FieldCount]float64
	for i, p := range r.Fields() {
		out[i] = *p
	}
	return out
}
