package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
)

type initializeScheduleRequest struct {
	CSVPath  string
	Platform string
}

func ValidateInitializeSchedule(ctx context.Context, csvPath string, posts []domainSchedule.Post, p domainPlatform.Platform) error {
	request := initializeScheduleRequest{CSVPath: csvPath, Platform: p.String()}
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.CSVPath, validation.Required),
		validation.Field(&request.Platform, validation.Required),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	if len(posts) == 0 {
		return pkgError.ValidationError("posts: cannot be empty.")
	}
	return nil
}
