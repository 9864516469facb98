package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/constants"
	userModel "lms_backend/internals/features/users/user/model"
	helper "lms_backend/internals/helpers"
	helperAuth "lms_backend/internals/helpers/auth"
)

// Guard authenticates the bearer token and, when roles are given, requires
// the caller to hold one of them.
//
//	missing token        -> 403 "No token provided"
//	bad / expired token  -> 401 "Unauthorized"
//	role not allowed     -> 403
//
// The account must still exist; a token for a deleted user is rejected.
func Guard(db *gorm.DB, roles ...string) fiber.Handler {
	forbidden := constants.RoleErrorFor(roles)

	return func(c *fiber.Ctx) error {
		raw := helperAuth.ExtractBearerToken(c)
		if raw == "" {
			return helper.JsonError(c, fiber.StatusForbidden, constants.ErrNoToken)
		}

		sess, err := helperAuth.ParseToken(raw)
		if err != nil {
			if errors.Is(err, helperAuth.ErrMissingSecret) {
				log.Println("[ERROR] JWT_SECRET is empty")
				return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT secret")
			}
			return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
		}

		if db != nil {
			var u userModel.UserModel
			err := db.WithContext(c.UserContext()).
				Select("id", "role", "full_name").
				First(&u, "id = ?", sess.UserID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
			}
			if err != nil {
				log.Printf("[ERROR] auth user lookup: %v", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			// the stored role wins over the claim
			sess.Role = u.Role
			sess.Name = u.FullName
		}

		if len(roles) > 0 && !sess.HasRole(roles...) {
			return helper.JsonError(c, fiber.StatusForbidden, forbidden)
		}

		helperAuth.SetSession(c, sess)
		return c.Next()
	}
}

// Authenticated allows any role.
func Authenticated(db *gorm.DB) fiber.Handler { return Guard(db) }

// TeacherOnly requires the teacher role.
func TeacherOnly(db *gorm.DB) fiber.Handler { return Guard(db, constants.TeacherOnly...) }

// StudentOnly requires the student role.
func StudentOnly(db *gorm.DB) fiber.Handler { return Guard(db, constants.StudentOnly...) }
