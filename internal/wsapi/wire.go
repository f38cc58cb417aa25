package wsapi

import (
	"encoding/json"

	"studiodash/internal/jsonutil"
	"studiodash/internal/workspace"
)

// envelope is the body shape of every response.
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data,omitempty"`
}

// workspaceJSON is one workspace on the wire.
type workspaceJSON struct {
	SpaceKey         string               `json:"spaceKey"`
	OwnerName        string               `json:"ownerName"`
	ProjectName      string               `json:"projectName"`
	OwnerGlobalKey   string               `json:"ownerGlobalKey"`
	WorkingStatus    string               `json:"workingStatus"`
	Collaborative    bool                 `json:"collaborative"`
	CreateDate       jsonutil.EpochMillis `json:"createDate"`
	LastModifiedDate jsonutil.EpochMillis `json:"lastModifiedDate"`
	DeleteTime       jsonutil.EpochMillis `json:"deleteTime"`
}

type listJSON struct {
	Workspaces     []workspaceJSON `json:"workspaces"`
	OpenedSpaceKey string          `json:"openedSpaceKey,omitempty"`
}

func (w workspaceJSON) model() workspace.Workspace {
	return workspace.Workspace{
		SpaceKey:         w.SpaceKey,
		OwnerName:        w.OwnerName,
		ProjectName:      w.ProjectName,
		OwnerGlobalKey:   w.OwnerGlobalKey,
		WorkingStatus:    workspace.WorkingStatus(w.WorkingStatus),
		Collaborative:    w.Collaborative,
		CreateDate:       w.CreateDate.Time(),
		LastModifiedDate: w.LastModifiedDate.Time(),
		DeleteTime:       w.DeleteTime.Time(),
	}
}

func toJSON(w workspace.Workspace) workspaceJSON {
	return workspaceJSON{
		SpaceKey:         w.SpaceKey,
		OwnerName:        w.OwnerName,
		ProjectName:      w.ProjectName,
		OwnerGlobalKey:   w.OwnerGlobalKey,
		WorkingStatus:    string(w.WorkingStatus),
		Collaborative:    w.Collaborative,
		CreateDate:       jsonutil.EpochMillis(w.CreateDate),
		LastModifiedDate: jsonutil.EpochMillis(w.LastModifiedDate),
		DeleteTime:       jsonutil.EpochMillis(w.DeleteTime),
	}
}

// Listing is the decoded answer of ListWorkspaces.
type Listing struct {
	Workspaces []workspace.Workspace
	// OpenedSpaceKey is the workspace currently open for the caller, if any.
	OpenedSpaceKey string
}

// Cards derives one card per workspace for viewer.
func (l Listing) Cards(viewer string) []workspace.Card {
	cards := make([]workspace.Card, 0, len(l.Workspaces))
	for _, ws := range l.Workspaces {
		cards = append(cards, workspace.Card{
			Workspace:       ws,
			ViewerGlobalKey: viewer,
			HasWSOpened:     l.OpenedSpaceKey != "",
			OpenedSpaceKey:  l.OpenedSpaceKey,
		})
	}
	return cards
}
