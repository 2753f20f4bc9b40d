package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/familyaccount/internal/client/client"
	"github.com/dmitrijs2005/familyaccount/internal/client/models"
	"github.com/dmitrijs2005/familyaccount/internal/client/session"
	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/dmitrijs2005/familyaccount/internal/filex"
	"github.com/dmitrijs2005/familyaccount/internal/validation"
)

func (a *App) renderDashboard() {
	p, ok := a.dir.Get()
	if !ok {
		return
	}
	a.println(a.st.title.Render("Dashboard"))
	name := p.Name
	if name == "" {
		name = p.Email
	}
	a.println("Welcome, " + name)
	a.println(a.st.muted.Render("Commands: profile, edit-profile, change-password, photo <path>, search, signout"))
}

func (a *App) Dashboard(ctx context.Context) error {
	return a.protectedCall(ctx, func(context.Context) error {
		a.nav.Replace(session.RouteDashboard)
		return nil
	})
}

func (a *App) Profile(ctx context.Context) error {
	return a.protectedCall(ctx, func(context.Context) error {
		p, _ := a.dir.Get()
		a.println(a.st.title.Render("Profile"))
		for _, row := range [][2]string{
			{"Name", p.Name},
			{"Email", p.Email},
			{"Phone", p.PhoneNo},
			{"Photo", p.ProfilePhotoURL},
			{"Member since", p.CreatedAt},
		} {
			if row[1] == "" {
				row[1] = a.st.muted.Render("-")
			}
			fmt.Fprintf(a.out, "  %-13s %s\n", row[0]+":", row[1])
		}
		return nil
	})
}

func (a *App) WhoAmI(ctx context.Context) error {
	return a.protectedCall(ctx, func(context.Context) error {
		p, _ := a.dir.Get()
		a.println(fmt.Sprintf("%s <%s>", p.Name, p.Email))
		return nil
	})
}

// EditProfile asks for a new name and phone number. An empty answer keeps
// the current value.
func (a *App) EditProfile(ctx context.Context) error {
	return a.protectedCall(ctx, func(ctx context.Context) error {
		cur, _ := a.dir.Get()

		name, err := getSimpleText(a.reader, fmt.Sprintf("Full name [%s]", cur.Name), a.out)
		if err != nil {
			return err
		}
		phone, err := getSimpleText(a.reader, fmt.Sprintf("Phone number [%s]", cur.PhoneNo), a.out)
		if err != nil {
			return err
		}
		if name = strings.TrimSpace(name); name == "" {
			name = cur.Name
		}
		if phone = strings.TrimSpace(phone); phone == "" {
			phone = cur.PhoneNo
		}

		if errs := validation.Profile(name, phone); !errs.OK() {
			a.printErrors(errs)
			return errs
		}

		resp, err := a.users.UpdateProfile(ctx, models.UpdateProfilePayload{Name: name, PhoneNo: phone})
		if err != nil {
			a.notify(session.NoticeError, "Update failed", client.Message(err, "Unable to update profile. Please try again."))
			return err
		}
		if resp.User != nil {
			a.dir.Sync(resp.User)
		}
		a.notify(session.NoticeSuccess, "Profile updated", withDefault(resp.Message, "Your changes have been saved."))
		return nil
	})
}

func (a *App) ChangePassword(ctx context.Context) error {
	return a.protectedCall(ctx, func(ctx context.Context) error {
		oldPw, err := a.readPassword("Current password")
		if err != nil {
			return err
		}
		newPw, err := a.readPassword("New password")
		if err != nil {
			return err
		}
		confirm, err := a.readPassword("Confirm new password")
		if err != nil {
			return err
		}

		if errs := validation.ChangePassword(oldPw, newPw, confirm); !errs.OK() {
			a.printErrors(errs)
			return errs
		}

		resp, err := a.users.ChangePassword(ctx, models.ChangePasswordPayload{OldPassword: oldPw, NewPassword: newPw, ConfirmPassword: confirm})
		if err != nil {
			a.notify(session.NoticeError, "Change password failed", client.Message(err, "Unable to change password. Please try again."))
			return err
		}
		a.notify(session.NoticeSuccess, "Password changed", withDefault(resp.Message, "Your password has been updated."))
		return nil
	})
}

// Photo uploads the image at path as the profile photo. The directory shows
// the local file right away and is rolled back if the upload fails.
func (a *App) Photo(ctx context.Context, path string) error {
	if path == "" {
		a.println("Usage: photo <path>")
		return nil
	}
	return a.protectedCall(ctx, func(ctx context.Context) error {
		data, err := filex.ReadFileLimited(path, common.MaxPhotoSize)
		if err != nil {
			a.notify(session.NoticeError, "Upload failed", fmt.Sprintf("Cannot read %s: %v", path, err))
			return err
		}
		if ct := filex.DetectContentType(data); !filex.IsImage(ct) {
			a.notify(session.NoticeError, "Upload failed", "Please choose a JPEG, PNG, GIF or WebP image.")
			return fmt.Errorf("unsupported content type %s", ct)
		}

		before, _ := a.dir.Get()
		if abs, err := filepath.Abs(path); err == nil {
			a.dir.Update(func(p *models.Profile) { p.ProfilePhotoURL = "file://" + abs })
		}

		resp, err := a.users.UploadProfilePhoto(ctx, path, bytes.NewReader(data))
		if err != nil {
			a.dir.Update(func(p *models.Profile) { p.ProfilePhotoURL = before.ProfilePhotoURL })
			a.notify(session.NoticeError, "Upload failed", client.Message(err, "Unable to upload photo. Please try again."))
			return err
		}
		if resp.User != nil {
			a.dir.Sync(resp.User)
		}
		a.notify(session.NoticeSuccess, "Photo updated", withDefault(resp.Message, "Your profile photo has been updated."))
		return nil
	})
}
