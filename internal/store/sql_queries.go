package store

const (
	createAccount = `INSERT INTO accounts (username, email, phone, password_hash)
    VALUES ($1, $2, NULLIF($3, ''), $4)
    RETURNING id, username, email, COALESCE(phone, ''), password_hash, updated_at, created_at;`

	findAccountByUsername = `SELECT id, username, email, COALESCE(phone, ''), password_hash, updated_at, created_at
    FROM accounts
    WHERE username = $1;`

	getAccountByID = `SELECT id, username, email, COALESCE(phone, ''), password_hash, updated_at, created_at
    FROM accounts
    WHERE id = $1;`

	updateAccountProfile = `UPDATE accounts
    SET username = $2, email = $3, phone = NULLIF($4, ''), updated_at = now()
    WHERE id = $1
    RETURNING id, username, email, COALESCE(phone, ''), password_hash, updated_at, created_at;`

	createThread = `INSERT INTO threads (account_id, name, last_note_preview, updated_at)
    VALUES ($1, $2, $3, now())
    RETURNING id;`

	updateThread = `UPDATE threads
    SET name = $3, last_note_preview = $4, updated_at = now()
    WHERE id = $2 AND account_id = $1 AND deleted_at IS NULL;`

	softDeleteThread = `UPDATE threads
    SET deleted_at = $3, updated_at = now()
    WHERE id = $2 AND account_id = $1 AND deleted_at IS NULL;`

	softDeleteThreadNotes = `UPDATE notes
    SET deleted_at = $3, updated_at = now()
    WHERE thread_id = $2 AND account_id = $1 AND deleted_at IS NULL;`

	findLiveThreadIDByName = `SELECT id
    FROM threads
    WHERE account_id = $1 AND btrim(name) = btrim($2) AND deleted_at IS NULL;`

	threadOwned = `SELECT EXISTS (
        SELECT 1 FROM threads
        WHERE id = $2 AND account_id = $1 AND deleted_at IS NULL
    );`

	updateLastNotePreview = `UPDATE threads
    SET last_note_preview = $3
    WHERE id = $2 AND account_id = $1 AND deleted_at IS NULL;`

	createNote = `INSERT INTO notes (account_id, thread_id, body, updated_at)
    VALUES ($1, $2, $3, now())
    RETURNING id;`

	updateNote = `UPDATE notes
    SET body = $3, updated_at = now()
    WHERE id = $2 AND account_id = $1 AND deleted_at IS NULL;`

	softDeleteNote = `UPDATE notes
    SET deleted_at = $3, updated_at = now()
    WHERE id = $2 AND account_id = $1 AND deleted_at IS NULL;`

	noteOwned = `SELECT EXISTS (
        SELECT 1 FROM notes
        WHERE id = $2 AND account_id = $1 AND deleted_at IS NULL
    );`

	selectServerTime = `SELECT now();`

	purgeAccountNotes   = `DELETE FROM notes WHERE account_id = $1;`
	purgeAccountThreads = `DELETE FROM threads WHERE account_id = $1;`

	purgeExpiredNotes   = `DELETE FROM notes WHERE deleted_at IS NOT NULL AND deleted_at < $1;`
	purgeExpiredThreads = `DELETE FROM threads WHERE deleted_at IS NOT NULL AND deleted_at < $1;`
)
