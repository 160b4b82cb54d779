package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/verbdrill/internal/config"
)

func TestNewMySQLConfig(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.DatabaseConfig
		wantAddr   string
		wantTLS    string
		wantParams map[string]string
	}{
		{
			name: "history database",
			cfg: config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				Database: "verbdrill",
				Username: "drill",
				Password: "secret",
			},
			wantAddr: "localhost:3306",
		},
		{
			name: "TLS",
			cfg: config.DatabaseConfig{
				Host:     "db.example.com",
				Port:     3307,
				Database: "verbdrill",
				Username: "drill",
				TLS:      true,
			},
			wantAddr: "db.example.com:3307",
			wantTLS:  "true",
		},
		{
			name: "managed parameters cannot be overridden",
			cfg: config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				Database: "verbdrill",
				Username: "drill",
				Params: map[string]string{
					"loc":             "Asia/Tokyo",
					"parseTime":       "false",
					"multiStatements": "true",
					"sql_mode":        "TRADITIONAL",
				},
			},
			wantAddr:   "localhost:3306",
			wantParams: map[string]string{"sql_mode": "TRADITIONAL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := newMySQLConfig(tt.cfg).FormatDSN()
			assert.Contains(t, dsn, "parseTime=true")
			assert.NotContains(t, dsn, "multiStatements")
			assert.NotContains(t, dsn, "Asia")

			got, err := mysql.ParseDSN(dsn)
			require.NoError(t, err)
			assert.Equal(t, "tcp", got.Net)
			assert.Equal(t, tt.wantAddr, got.Addr)
			assert.Equal(t, tt.cfg.Database, got.DBName)
			assert.Equal(t, tt.cfg.Username, got.User)
			assert.Equal(t, tt.cfg.Password, got.Passwd)
			assert.True(t, got.ParseTime)
			assert.Equal(t, time.UTC, got.Loc)
			assert.False(t, got.MultiStatements)
			assert.Equal(t, tt.wantTLS, got.TLSConfig)
			assert.Equal(t, tt.wantParams, got.Params)
		})
	}
}

func TestOpen(t *testing.T) {
	db, err := Open(config.DatabaseConfig{
		Host:            "localhost",
		Port:            3306,
		Database:        "verbdrill",
		Username:        "drill",
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 300,
	})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "mysql", db.DriverName())
	assert.Equal(t, 4, db.Stats().MaxOpenConnections)
}

func TestRunInTx(t *testing.T) {
	const insertAttempt = "INSERT INTO practice_attempts"
	const recordVersion = "INSERT INTO schema_migrations"

	recordAttempt := func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO practice_attempts (session_id, verb) VALUES (?, ?)", "s1", "work"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", "001_create_practice_attempts")
		return err
	}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   string
	}{
		{
			name: "every statement is committed together",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertAttempt).WithArgs("s1", "work").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(recordVersion).WithArgs("001_create_practice_attempts").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "a failing statement rolls back the earlier ones",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertAttempt).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(recordVersion).WillReturnError(errors.New("duplicate entry"))
				mock.ExpectRollback()
			},
			wantErr: "duplicate entry",
		},
		{
			name: "rollback failure keeps the statement error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertAttempt).WillReturnError(errors.New("table doesn't exist"))
				mock.ExpectRollback().WillReturnError(errors.New("connection lost"))
			},
			wantErr: "tx.Rollback() > connection lost (after table doesn't exist)",
		},
		{
			name: "begin fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
			},
			wantErr: "db.BeginTxx() > too many connections",
		},
		{
			name: "commit fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertAttempt).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(recordVersion).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(errors.New("lock wait timeout"))
			},
			wantErr: "tx.Commit() > lock wait timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			err = RunInTx(context.Background(), sqlx.NewDb(db, "mysql"), recordAttempt)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
