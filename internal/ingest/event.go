package ingest

// Event is the S3 object-created notification payload. Both AWS S3 and
// MinIO webhook notifications deliver this shape; only the bucket name and
// object key matter to the pipeline.
type Event struct {
	Records []EventRecord `json:"Records"`
}

// EventRecord is one stored-object notification within a batch.
type EventRecord struct {
	S3 EventS3 `json:"s3"`
}

type EventS3 struct {
	Bucket EventBucket `json:"bucket"`
	Object EventObject `json:"object"`
}

type EventBucket struct {
	Name string `json:"name"`
}

type EventObject struct {
	Key string `json:"key"`
}
