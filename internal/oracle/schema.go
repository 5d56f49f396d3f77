package oracle

import (
	"context"
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
)

// Execer is the subset of *sql.DB and *sql.Tx the schema operations need.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SequenceAndTriggerNames derives the names of the schema objects backing an
// emulated auto-increment column. The 10-character suffix is an uppercase
// MD5 of "table:column", so the same inputs always address the same objects:
// a later drop can find exactly what an earlier create made, across process
// restarts and without a name registry. Oracle's 30-character identifier
// limit is what forces the hashing in the first place.
func SequenceAndTriggerNames(table, column string) (sequence, trigger string) {
	sum := md5.Sum([]byte(table + ":" + column))
	suffix := strings.ToUpper(hex.EncodeToString(sum[:]))[:10]
	return "SQ_" + suffix, "TR_" + suffix
}

// EnsureAutoIncrement makes table.column behave like an identity column on
// Oracle 11g: a NOCACHE sequence starting at 1 plus a BEFORE INSERT trigger
// that assigns NEXTVAL whenever the column arrives NULL. Rows inserted with
// an explicit value keep it.
//
// The sequence is existence-checked before creation and the trigger uses
// CREATE OR REPLACE, so reapplying a migration is a no-op rather than an
// ORA-00955. NOCACHE keeps assigned keys strictly monotonic; cached blocks
// would leave gaps whenever the instance restarts.
func EnsureAutoIncrement(ctx context.Context, db Execer, table, column string) error {
	sequence, trigger := SequenceAndTriggerNames(table, column)

	createSequence := fmt.Sprintf(`
		DECLARE
			seq_count INTEGER;
		BEGIN
			SELECT COUNT(1) INTO seq_count FROM USER_SEQUENCES WHERE SEQUENCE_NAME = '%s';
			IF seq_count = 0 THEN
				EXECUTE IMMEDIATE 'CREATE SEQUENCE %s START WITH 1 INCREMENT BY 1 NOCACHE';
			END IF;
		END;`,
		sequence, quoteName(sequence),
	)
	if _, err := db.ExecContext(ctx, createSequence); err != nil {
		return fmt.Errorf("create sequence %s for %s.%s: %w", sequence, table, column, err)
	}

	createTrigger := fmt.Sprintf(`
		CREATE OR REPLACE TRIGGER %s
		BEFORE INSERT ON %s
		FOR EACH ROW
		WHEN (new.%s IS NULL)
		BEGIN
			SELECT %s.NEXTVAL INTO :new.%s FROM dual;
		END;`,
		quoteName(trigger), quoteName(table), column, quoteName(sequence), quoteName(column),
	)
	if _, err := db.ExecContext(ctx, createTrigger); err != nil {
		return fmt.Errorf("create trigger %s on %s: %w", trigger, table, err)
	}

	return nil
}

// DropAutoIncrement removes the sequence and trigger created by
// EnsureAutoIncrement. Both drops tolerate the object already being gone
// (ORA-04080 for the trigger, ORA-02289 for the sequence) so a teardown can
// be re-run after a partial failure; any other error propagates.
func DropAutoIncrement(ctx context.Context, db Execer, table, column string) error {
	sequence, trigger := SequenceAndTriggerNames(table, column)

	dropTrigger := fmt.Sprintf(`
		BEGIN
			EXECUTE IMMEDIATE 'DROP TRIGGER %s';
		EXCEPTION
			WHEN OTHERS THEN
				IF SQLCODE != -4080 THEN
					RAISE;
				END IF;
		END;`,
		quoteName(trigger),
	)
	if _, err := db.ExecContext(ctx, dropTrigger); err != nil {
		return fmt.Errorf("drop trigger %s on %s: %w", trigger, table, err)
	}

	dropSequence := fmt.Sprintf(`
		BEGIN
			EXECUTE IMMEDIATE 'DROP SEQUENCE %s';
		EXCEPTION
			WHEN OTHERS THEN
				IF SQLCODE != -2289 THEN
					RAISE;
				END IF;
		END;`,
		quoteName(sequence),
	)
	if _, err := db.ExecContext(ctx, dropSequence); err != nil {
		return fmt.Errorf("drop sequence %s for %s.%s: %w", sequence, table, column, err)
	}

	return nil
}

// quoteName wraps an identifier in double quotes, uppercased the way
// unquoted Oracle identifiers fold.
func quoteName(name string) string {
	if strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) {
		return name
	}
	return `"` + strings.ToUpper(name) + `"`
}
