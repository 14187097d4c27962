package sql

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/lguimbarda/min-fold/fold/aggregate"
	"github.com/lguimbarda/min-fold/fold/core"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	// Each pooled connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE readings (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			sensor TEXT NOT NULL,
			value  INTEGER,
			ratio  REAL NOT NULL,
			price  TEXT NOT NULL
		)
	`)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	_, err = db.Exec(`INSERT INTO readings (sensor, value, ratio, price) VALUES
		('a', 1, 0.5, '0.10'),
		('a', 2, 1.5, '0.20'),
		('b', NULL, 2.0, '1.25'),
		('b', 4, 0.25, '3.00')`)
	if err != nil {
		t.Fatalf("failed to insert data: %v", err)
	}
	return db
}

func TestQuery(t *testing.T) {
	db := setupTestDB(t)

	type reading struct {
		Sensor string
		Ratio  float64
	}
	stream := Query(db, "SELECT sensor, ratio FROM readings WHERE sensor = ? ORDER BY id", func(rows *sql.Rows) (reading, error) {
		var r reading
		err := rows.Scan(&r.Sensor, &r.Ratio)
		return r, err
	}, "a")

	got, err := core.Slice(context.Background(), stream)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Ratio != 0.5 || got[1].Ratio != 1.5 {
		t.Errorf("got %+v, want the two readings of sensor a", got)
	}
}

func TestQueryColumnFolds(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("int64 with nulls", func(t *testing.T) {
		src := QueryColumn[sql.Null[int64]](db, "SELECT value FROM readings ORDER BY id")
		sum, err := aggregate.SumNull[int64](ctx, src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sum != 7 {
			t.Errorf("SumNull = %d, want 7", sum)
		}
		avg, err := aggregate.AverageNull[int64](ctx, src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !avg.Valid || avg.V != 7.0/3 {
			t.Errorf("AverageNull = %+v, want 7/3", avg)
		}
	})

	t.Run("int32 no seed", func(t *testing.T) {
		src := QueryColumn[int32](db, "SELECT id FROM readings ORDER BY id")
		got, err := aggregate.Aggregate(ctx, src, aggregate.SyncCombiner(func(acc, x int32) (int32, error) {
			return acc + 3 - x, nil
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 1 {
			t.Errorf("got %d, want 1", got)
		}
	})

	t.Run("float32", func(t *testing.T) {
		got, err := aggregate.Max[float32](ctx, QueryColumn[float32](db, "SELECT ratio FROM readings"))
		if err != nil || got != 2 {
			t.Errorf("Max = (%v, %v), want (2, nil)", got, err)
		}
	})

	t.Run("decimal", func(t *testing.T) {
		got, err := aggregate.SumDecimal(ctx, QueryColumn[decimal.Decimal](db, "SELECT price FROM readings"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(decimal.RequireFromString("4.55")) {
			t.Errorf("SumDecimal = %s, want 4.55", got)
		}
	})

	t.Run("restartable", func(t *testing.T) {
		src := QueryColumn[int64](db, "SELECT id FROM readings")
		for pass := 0; pass < 3; pass++ {
			n, err := aggregate.Count[int64](ctx, src)
			if err != nil || n != 4 {
				t.Errorf("pass %d: Count = (%d, %v), want (4, nil)", pass, n, err)
			}
		}
	})
}

func TestQueryRow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	scan := func(row *sql.Row) (float64, error) {
		var v float64
		err := row.Scan(&v)
		return v, err
	}

	got, err := aggregate.Aggregate(ctx, QueryRow(db, "SELECT SUM(ratio) FROM readings WHERE sensor = ?", scan, "b"),
		aggregate.SyncCombiner(func(acc, x float64) (float64, error) { return acc + x, nil }))
	if err != nil || got != 2.25 {
		t.Errorf("got (%v, %v), want (2.25, nil)", got, err)
	}

	_, err = aggregate.Aggregate(ctx, QueryRow(db, "SELECT ratio FROM readings WHERE sensor = ?", scan, "zzz"),
		aggregate.SyncCombiner(func(acc, x float64) (float64, error) { return acc + x, nil }))
	if !errors.Is(err, core.ErrEmptySequence) {
		t.Errorf("no rows: error = %v, want ErrEmptySequence", err)
	}
}

func TestQueryErrors(t *testing.T) {
	boom := errors.New("connection reset")
	query := "SELECT value FROM readings"

	tests := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
		want   error
	}{
		{
			name: "query fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnError(boom)
			},
			want: boom,
		},
		{
			name: "row iteration fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(1)).AddRow(int64(2)).RowError(1, boom))
			},
			want: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock.New: %v", err)
			}
			defer db.Close()
			tt.expect(mock)

			_, err = aggregate.Sum[int64](context.Background(), QueryColumn[int64](db, query))
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestQueryScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	mock.ExpectQuery("SELECT value").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("not a number"))

	_, err = aggregate.Sum[int64](context.Background(), QueryColumn[int64](db, "SELECT value FROM readings"))
	if err == nil {
		t.Fatal("expected a scan error")
	}
}

func TestQueryNotRunWhenCanceled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = aggregate.Sum[int64](ctx, QueryColumn[int64](db, "SELECT value FROM readings"))
	if !errors.Is(err, core.ErrCanceled) {
		t.Fatalf("error = %v, want ErrCanceled", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}
