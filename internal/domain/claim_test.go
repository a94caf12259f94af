package domain

import (
	"testing"
	"time"
)

func TestEnumValidity(t *testing.T) {
	t.Run("claim status", func(t *testing.T) {
		for _, status := range []ClaimStatus{ClaimStatusPending, ClaimStatusInProgress, ClaimStatusResolved, ClaimStatusClosed} {
			if !status.IsValid() {
				t.Errorf("%s should be valid", status)
			}
		}
		if ClaimStatus("OPEN").IsValid() {
			t.Error("OPEN should be invalid")
		}
	})

	t.Run("priority", func(t *testing.T) {
		for _, priority := range []ClaimPriority{ClaimPriorityLow, ClaimPriorityMedium, ClaimPriorityHigh, ClaimPriorityUrgent} {
			if !priority.IsValid() {
				t.Errorf("%s should be valid", priority)
			}
		}
		if ClaimPriority("ASAP").IsValid() {
			t.Error("ASAP should be invalid")
		}
	})

	t.Run("criticality", func(t *testing.T) {
		for _, criticality := range []ClaimCriticality{ClaimCriticalityMinor, ClaimCriticalityMajor, ClaimCriticalityCritical, ClaimCriticalityBlocker} {
			if !criticality.IsValid() {
				t.Errorf("%s should be valid", criticality)
			}
		}
	})

	t.Run("claim type", func(t *testing.T) {
		for _, claimType := range []ClaimType{ClaimTypeTechnical, ClaimTypeBilling, ClaimTypeCustomerService, ClaimTypeOther} {
			if !claimType.IsValid() {
				t.Errorf("%s should be valid", claimType)
			}
		}
	})

	t.Run("role", func(t *testing.T) {
		for _, role := range []Role{RoleUser, RoleCustomer, RoleAuditor, RoleAdmin} {
			if !role.IsValid() {
				t.Errorf("%s should be valid", role)
			}
		}
		if Role("ROOT").IsValid() {
			t.Error("ROOT should be invalid")
		}
	})

	t.Run("project type", func(t *testing.T) {
		if !ProjectTypeMaintenance.IsValid() {
			t.Error("MAINTENANCE should be valid")
		}
		if ProjectType("HOBBY").IsValid() {
			t.Error("HOBBY should be invalid")
		}
	})
}

func TestHistoryEntryOpen(t *testing.T) {
	entry := ClaimHistoryEntry{StartDate: time.Now()}
	if !entry.Open() {
		t.Error("entry without end date should be open")
	}
	now := time.Now()
	entry.EndDate = &now
	if entry.Open() {
		t.Error("entry with end date should be closed")
	}
}

func TestAttachmentKindFromName(t *testing.T) {
	tests := []struct {
		name string
		want AttachmentKind
	}{
		{name: "scan.pdf", want: AttachmentKindPDF},
		{name: "SCAN.PDF", want: AttachmentKindPDF},
		{name: "photo.jpg", want: AttachmentKindImage},
		{name: "noextension", want: AttachmentKindImage},
	}
	for _, tt := range tests {
		if got := AttachmentKindFromName(tt.name); got != tt.want {
			t.Errorf("AttachmentKindFromName(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestSubareaSnapshotFor(t *testing.T) {
	subarea := Subarea{ID: "sa1", Name: "Hardware", AreaID: "a1", AreaName: "Support"}
	snapshot := subarea.SnapshotFor()
	if snapshot.SubareaID != "sa1" || snapshot.SubareaName != "Hardware" {
		t.Errorf("snapshot subarea = %+v", snapshot)
	}
	if snapshot.AreaID != "a1" || snapshot.AreaName != "Support" {
		t.Errorf("snapshot area = %+v", snapshot)
	}
}
