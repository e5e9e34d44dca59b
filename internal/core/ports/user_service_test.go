package ports

import (
	"encoding/json"
	"testing"
)

func TestUpdateUserInput_TracksRoleKey(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantRole  bool
		wantTouch bool
	}{
		{name: "absent", body: `{"name":"A"}`, wantRole: false, wantTouch: false},
		{name: "null", body: `{"role":null}`, wantRole: false, wantTouch: true},
		{name: "empty", body: `{"role":""}`, wantRole: true, wantTouch: true},
		{name: "value", body: `{"role":"admin"}`, wantRole: true, wantTouch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in UpdateUserInput
			if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if (in.Role != nil) != tt.wantRole {
				t.Errorf("Role set = %v, want %v", in.Role != nil, tt.wantRole)
			}
			if in.TouchesRole() != tt.wantTouch {
				t.Errorf("TouchesRole() = %v, want %v", in.TouchesRole(), tt.wantTouch)
			}
		})
	}
}

func TestUpdateUserInput_KeepsOtherFields(t *testing.T) {
	var in UpdateUserInput
	if err := json.Unmarshal([]byte(`{"name":"Eka","status":"inactive","role":null}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if in.Name == nil || *in.Name != "Eka" || in.Status == nil || *in.Status != "inactive" {
		t.Fatalf("plain fields lost: %+v", in)
	}
}

func TestUpdateUserInput_RejectsNonObject(t *testing.T) {
	var in UpdateUserInput
	if err := json.Unmarshal([]byte(`["role"]`), &in); err == nil {
		t.Fatalf("expected error for a non-object body")
	}
}
