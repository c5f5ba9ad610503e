package cmd

import (
	"github.com/sootra/accessibility-app/internal/config"
	"github.com/sootra/accessibility-app/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'service' and 'lambda-http'",
		Short:       helpers.Ptr("m"),
	},
	&config.Accessibility.RequirementsDocHeader: {
		Name:        "requirements-doc-header",
		Description: "The request header carrying the requirements document URL",
	},
	&config.Global.S3.Upload.BucketName: {
		Name:        "report-s3-upload-bucket",
		Description: "The S3 bucket to use when uploading analysis reports",
		Env:         helpers.Ptr("REPORT_S3_BUCKET"),
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
	&config.Global.S3.Upload.Enabled: {
		Name:        "report-s3-upload",
		Description: "Enable S3 upload of analysis reports",
		Env:         helpers.Ptr("REPORT_S3_UPLOAD"),
	},
}

var envMapInt = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
		Count:       true,
	},
	&config.Accessibility.MaxPayloadBytes: {
		Name:        "max-payload-bytes",
		Description: "The largest accepted request body, in bytes",
	},
}

var envMapStringSlice = map[*[]string]boundEnvVar[[]string]{
	&config.Accessibility.ContentTypes: {
		Name:        "content-types",
		Description: "The accepted request media types",
	},
}
