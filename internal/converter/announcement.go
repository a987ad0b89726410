package converter

import (
	"vault_backend/internal/api/dto/announcement"
	"vault_backend/internal/model"
)

func ToAnnouncementDTO(a *model.Announcement) announcement.Announcement {
	return announcement.Announcement{
		Enabled:     a.Enabled,
		ImageURL:    a.ImageURL,
		LastUpdated: toMillis(a.UpdatedAt),
	}
}

func ToAnnouncement(req announcement.UpdateRequest) model.Announcement {
	return model.Announcement{
		Enabled:  req.Enabled,
		ImageURL: req.ImageURL,
	}
}
