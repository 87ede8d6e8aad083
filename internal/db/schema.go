package db

// SchemaSQL contains the database schema initialization SQL. Jobs are
// addressed by their job_id field, never by record ID; the unique index
// enforces one record per job.
const SchemaSQL = `
    DEFINE TABLE IF NOT EXISTS analysis SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS job_id ON analysis TYPE string;
    DEFINE FIELD IF NOT EXISTS email ON analysis TYPE string;
    DEFINE FIELD IF NOT EXISTS product_idea ON analysis TYPE string;
    DEFINE FIELD IF NOT EXISTS tier ON analysis TYPE string;
    DEFINE FIELD IF NOT EXISTS status ON analysis TYPE string;
    DEFINE FIELD IF NOT EXISTS progress ON analysis TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS created_at ON analysis TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS completed_at ON analysis TYPE option<datetime>;
    DEFINE FIELD IF NOT EXISTS raw_market_data ON analysis TYPE option<object> FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS base_analysis ON analysis TYPE option<object> FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS analysis ON analysis TYPE option<object> FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS error ON analysis TYPE option<string>;

    DEFINE INDEX IF NOT EXISTS analysis_job_id ON analysis FIELDS job_id UNIQUE;
    DEFINE INDEX IF NOT EXISTS analysis_status ON analysis FIELDS status;
    DEFINE INDEX IF NOT EXISTS analysis_email ON analysis FIELDS email;
`
