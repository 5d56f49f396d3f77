package repository

import (
	"context"
	"fmt"

	"github.com/umeshgupta05/SmartPathAI/internal/oracle"
)

// tableDDL maps each table to its CREATE statement. Flexible nested data
// (interests, preferences, performance, completion lists) lives in CLOB
// columns holding JSON text.
var tableDDL = []struct {
	name string
	ddl  string
}{
	{
		name: "USER_PROFILES",
		ddl: `CREATE TABLE user_profiles (
			id NUMBER(19) PRIMARY KEY,
			name VARCHAR2(255) NOT NULL,
			email VARCHAR2(255) NOT NULL,
			password_hash VARCHAR2(512) NOT NULL,
			interests CLOB,
			preferences CLOB,
			performance CLOB,
			completed_courses CLOB,
			earned_certifications CLOB,
			created_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL,
			last_login TIMESTAMP,
			CONSTRAINT uq_user_profiles_email UNIQUE (email)
		)`,
	},
	{
		name: "COURSES",
		ddl: `CREATE TABLE courses (
			id NUMBER(19) PRIMARY KEY,
			title VARCHAR2(200) NOT NULL,
			short_intro CLOB,
			skills VARCHAR2(400),
			category VARCHAR2(120),
			duration VARCHAR2(80),
			rating VARCHAR2(20),
			site VARCHAR2(80),
			url VARCHAR2(1000),
			CONSTRAINT uq_courses_title UNIQUE (title)
		)`,
	},
	{
		name: "CERTIFICATIONS",
		ddl: `CREATE TABLE certifications (
			id NUMBER(19) PRIMARY KEY,
			name VARCHAR2(200) NOT NULL,
			difficulty VARCHAR2(50),
			description CLOB,
			link VARCHAR2(1000),
			CONSTRAINT uq_certifications_name UNIQUE (name)
		)`,
	},
	{
		name: "QUIZ_RESULTS",
		ddl: `CREATE TABLE quiz_results (
			id NUMBER(19) PRIMARY KEY,
			user_id NUMBER(19) NOT NULL,
			score NUMBER(3) NOT NULL,
			created_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL,
			CONSTRAINT fk_quiz_results_user FOREIGN KEY (user_id) REFERENCES user_profiles (id)
		)`,
	},
	{
		name: "USER_ACTIVITIES",
		ddl: `CREATE TABLE user_activities (
			id NUMBER(19) PRIMARY KEY,
			user_id NUMBER(19) NOT NULL,
			learning_hours NUMBER(8,2) DEFAULT 0 NOT NULL,
			score NUMBER(3) DEFAULT 0 NOT NULL,
			activity_date DATE NOT NULL,
			created_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL,
			CONSTRAINT fk_user_activities_user FOREIGN KEY (user_id) REFERENCES user_profiles (id),
			CONSTRAINT uq_user_activities_day UNIQUE (user_id, activity_date)
		)`,
	},
}

// Migrate creates any missing tables and installs the sequence/trigger pair
// that emulates auto-increment ids on Oracle 11g. Safe to run on every
// startup; existing objects are left alone.
func (r *Repository) Migrate(ctx context.Context) error {
	for _, table := range tableDDL {
		exists, err := r.tableExists(ctx, table.name)
		if err != nil {
			return err
		}
		if !exists {
			if _, err := r.db.ExecContext(ctx, table.ddl); err != nil {
				return fmt.Errorf("create table %s: %w", table.name, err)
			}
		}

		if err := oracle.EnsureAutoIncrement(ctx, r.db, table.name, "ID"); err != nil {
			return fmt.Errorf("migrate %s: %w", table.name, err)
		}
	}

	return nil
}

func (r *Repository) tableExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM user_tables WHERE table_name = :1`, name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", name, err)
	}
	return count > 0, nil
}
