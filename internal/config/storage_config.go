package config

const uploadMaxBytesEnvVar = "UPLOAD_MAX_BYTES"

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetUploadDir() string {
	return GetEnv("UPLOAD_DIR", "./data/uploads")
}

func (Storage) GetUploadMaxBytes() int64 {
	return int64(GetEnvInt(uploadMaxBytesEnvVar, 10<<20))
}

// GetS3Bucket selects the S3 upload store when non-empty
func (Storage) GetS3Bucket() string {
	return GetEnv("S3_BUCKET", "")
}

func (Storage) GetS3Region() string {
	return GetEnv("S3_REGION", "us-east-1")
}

func (Storage) GetS3Endpoint() string {
	return GetEnv("S3_ENDPOINT", "")
}

func (Storage) GetS3AccessKey() string {
	return GetEnv("S3_ACCESS_KEY", "")
}

func (Storage) GetS3SecretKey() string {
	return GetEnv("S3_SECRET_KEY", "")
}
