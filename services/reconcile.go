package services

import (
	"contact-management/apperr"
	"contact-management/model"
	"contact-management/validator"
)

// PhonePlan is the minimal set of row operations that turns the stored phone
// set into the submitted one. Applying Delete, then Update, then Insert keeps
// unaffected rows' ids stable instead of churning the whole set.
type PhonePlan struct {
	Delete []int64
	Update []model.Phone
	Insert []model.Phone
}

// Empty reports whether the plan changes nothing.
func (p PhonePlan) Empty() bool {
	return len(p.Delete) == 0 && len(p.Update) == 0 && len(p.Insert) == 0
}

// ReconcilePhones diffs existing rows against the submitted list for one
// contact. Entries carrying an id overwrite the matching row; entries without
// one become inserts with a fresh id scoped to the contact; existing ids absent
// from the submission are deleted. Numbers must already be normalized.
//
// A submitted id that does not belong to the contact is a conflict: accepting
// it would let a caller graft ids from another contact onto this one.
func ReconcilePhones(contactID int64, existing []model.Phone, submitted []validator.UpdatePhoneInput) (PhonePlan, error) {
	existingIDs := make(map[int64]bool, len(existing))
	var maxID int64
	for _, p := range existing {
		existingIDs[p.ID] = true
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	var plan PhonePlan
	submittedIDs := make(map[int64]bool, len(submitted))
	for _, in := range submitted {
		if in.ID == nil {
			maxID++
			plan.Insert = append(plan.Insert, model.Phone{
				ID:        maxID,
				ContactID: contactID,
				Number:    in.Number,
			})
			continue
		}
		if !existingIDs[*in.ID] {
			return PhonePlan{}, apperr.Conflict("Telefone não pertence ao contato")
		}
		submittedIDs[*in.ID] = true
		plan.Update = append(plan.Update, model.Phone{
			ID:        *in.ID,
			ContactID: contactID,
			Number:    in.Number,
		})
	}

	for _, p := range existing {
		if !submittedIDs[p.ID] {
			plan.Delete = append(plan.Delete, p.ID)
		}
	}
	return plan, nil
}
