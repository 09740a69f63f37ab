package approvalworkflow

import (
	"fmt"
	"hirex-backend/lib/notification"
	"hirex-backend/lib/utils/helpers"
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"
	"strings"
)

func jrContext(jr dbmodels.JobRequisition) dbmodels.NotificationContext {
	result := dbmodels.NotificationContext{
		JrID:       jr.GetJrID(),
		JobTitle:   jr.GetJobTitleName(),
		Locations:  locations(jr),
		Experience: experienceRange(jr.MinExperience, jr.MaxExperience),
		Skills:     topSkills(jr.PrimarySkills),
	}
	if jr.HiringManager != nil {
		result.HiringManager = jr.HiringManager.GetFullName()
	}
	return result
}

func locations(jr dbmodels.JobRequisition) string {
	return helpers.JoinOrDefault(jr.WorkLocations, ", ", models.NotSpecified)
}

func experienceRange(minYears, maxYears *int) string {
	return fmt.Sprintf("%d–%d years", helpers.PtrValue(minYears), helpers.PtrValue(maxYears))
}

func topSkills(skills []string) string {
	list := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			list = append(list, skill)
		}
	}
	return helpers.JoinOrDefault(helpers.FirstN(list, 3), ", ", models.NotSpecified)
}

func approvalRequest(jr dbmodels.JobRequisition, next NextApprover) notification.Notification {
	return notification.Notification{
		JobRequisitionID: jr.ID,
		RecipientEmail:   next.ApproverEmail,
		RecipientName:    next.ApproverName,
		Kind:             models.NotificationApprovalRequest,
		JR:               jrContext(jr),
	}
}

// toSubmitter addresses the submitter, or the hiring manager when nobody else submitted.
func toSubmitter(jr dbmodels.JobRequisition, kind models.NotificationKind, ctx dbmodels.NotificationContext) notification.Notification {
	n := notification.Notification{
		JobRequisitionID: jr.ID,
		Kind:             kind,
		JR:               ctx,
	}
	if submitter := jr.GetSubmitter(); submitter != nil {
		n.RecipientEmail = submitter.Email
		n.RecipientName = submitter.GetFullName()
	}
	return n
}

func rejectedNotice(jr dbmodels.JobRequisition, approver dbmodels.User, comments string) notification.Notification {
	ctx := jrContext(jr)
	ctx.ApproverName = approver.GetFullName()
	ctx.ApproverRole = approver.Role.ToHuman()
	ctx.Comments = comments
	ctx.Status = string(models.JRStatusRejected)
	return toSubmitter(jr, models.NotificationRejected, ctx)
}

func grantedNotice(jr dbmodels.JobRequisition, approver dbmodels.User, comments string, newStatus models.JRStatus) notification.Notification {
	ctx := jrContext(jr)
	ctx.ApproverName = approver.GetFullName()
	ctx.ApproverRole = approver.Role.ToHuman()
	ctx.Comments = comments
	ctx.Status = string(newStatus)
	return toSubmitter(jr, models.NotificationApprovalGranted, ctx)
}

func recruiterAssignedNotice(jr dbmodels.JobRequisition, lead dbmodels.User) notification.Notification {
	return notification.Notification{
		JobRequisitionID: jr.ID,
		RecipientEmail:   lead.Email,
		RecipientName:    lead.GetFullName(),
		Kind:             models.NotificationRecruiterAssigned,
		JR: dbmodels.NotificationContext{
			JrID:      jr.GetJrID(),
			JobTitle:  jr.GetJobTitleName(),
			Locations: locations(jr),
		},
	}
}

func statusChangedNotice(jr dbmodels.JobRequisition, status string) notification.Notification {
	ctx := dbmodels.NotificationContext{
		JrID:     jr.GetJrID(),
		JobTitle: jr.GetJobTitleName(),
		Status:   status,
	}
	return toSubmitter(jr, models.NotificationStatusChanged, ctx)
}

func reminderNotice(jr dbmodels.JobRequisition, approver approverIdentity, pendingDays int) notification.Notification {
	ctx := jrContext(jr)
	ctx.Status = string(jr.Status)
	ctx.PendingSinceDays = pendingDays
	return notification.Notification{
		JobRequisitionID: jr.ID,
		RecipientEmail:   approver.Email,
		RecipientName:    approver.Name,
		Kind:             models.NotificationApprovalReminder,
		JR:               ctx,
	}
}
