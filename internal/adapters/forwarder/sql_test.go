package forwarder

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
)

const expectedInsert = `INSERT INTO "weather_readings" (pressure, relative_humidity, temperature, wind_direction, wind_speed, chp1, direct_sun, global_sun, diffuse_sun, rain_fall, all_day_illumination, pm25, captured_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`

func TestSQLForwarderSend(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	fwd := NewSQLForwarder(db, "")
	rec := &domain.Record{
		Pressure: 1013.25, RelativeHumidity: 85, Temperature: 30.5, WindDirection: 90,
		WindSpeed: 5, CHP1: 1.2, DirectSun: 400, GlobalSun: 800, DiffuseSun: 200,
		RainFall: 10.5, AllDayIllumination: 1200, PM25: 15, Timestamp: "2024-05-01T10:30:00Z",
	}

	mock.ExpectExec(regexp.QuoteMeta(expectedInsert)).
		WithArgs(1013.25, 85.0, 30.5, 90.0, 5.0, 1.2, 400.0, 800.0, 200.0, 10.5, 1200.0, 15.0, "2024-05-01T10:30:00Z").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := fwd.Send(context.Background(), rec); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLForwarderSendError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "readings"`)).WillReturnError(boom)

	fwd := NewSQLForwarder(db, "readings")
	if err := fwd.Send(context.Background(), &domain.Record{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped exec error, got %v", err)
	}
}

func TestSQLForwarderName(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	if name := NewSQLForwarder(db, "readings").Name(); name != "sql" {
		t.Fatalf("expected forwarder name sql, got %s", name)
	}
	var nilFwd *SQLForwarder
	if err := nilFwd.Send(context.Background(), &domain.Record{}); err == nil {
		t.Fatalf("expected error from nil forwarder")
	}
}

func TestSQLForwarderQuotesTable(t *testing.T) {
	cases := map[string]string{
		"telemetry.weather": `INSERT INTO "telemetry"."weather" (`,
		`readings"; DROP TABLE x; --`: `INSERT INTO "readings""; DROP TABLE x; --" (`,
	}
	for table, prefix := range cases {
		if q := insertQuery(table); !strings.HasPrefix(q, prefix) {
			t.Fatalf("table %q: query %q does not start with %q", table, q, prefix)
		}
	}
}
