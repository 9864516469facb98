package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/assignments/dto"
	"lms_backend/internals/features/school/assignments/service"
	helper "lms_backend/internals/helpers"
	helperAuth "lms_backend/internals/helpers/auth"
	"lms_backend/internals/helpers/storage"
)

type AssignmentController struct {
	Svc *service.AssignmentService
}

func NewAssignmentController(db *gorm.DB, blob storage.BlobService) *AssignmentController {
	return &AssignmentController{Svc: service.NewAssignmentService(db, blob)}
}

// POST /api/assignments
func (h *AssignmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateAssignmentRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	m, err := h.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Assignment created successfully", dto.NewAssignmentResponse(m))
}

// GET /api/classes/:classId/assignments
func (h *AssignmentController) ListByClass(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	classID, err := helper.ParseUUIDParam(c, "classId", "class")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := h.Svc.List(c.UserContext(), sess, classID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// POST /api/submit-assignment (multipart/form-data)
func (h *AssignmentController) Submit(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.SubmitAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form data")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.FromServiceError(c, err)
	}
	assignmentID, err := helper.ParseUUID(req.AssignmentID, "assignment")
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No file uploaded")
	}

	sub, err := h.Svc.Submit(c.UserContext(), sess.UserID, assignmentID, fh)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Assignment submitted successfully", dto.NewSubmissionResponse(sub))
}

// PUT /api/submissions/:id/grade
func (h *AssignmentController) Grade(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "submission")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.GradeSubmissionRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	sub, err := h.Svc.Grade(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Submission graded successfully", dto.NewSubmissionResponse(sub))
}

// GET /api/student/assignments
func (h *AssignmentController) StudentAssignments(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := h.Svc.StudentAssignments(c.UserContext(), sess.UserID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}
