// Package debugui renders Dear ImGui debug windows from inside an ECS frame.
// Windows are ImguiItem entities; ImguiSystem defers their render functions to the end
// of the frame so they observe the storage after the frame's commands are flushed.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spaceshooter/ecs"
)

// ImguiItem holds a render function called once per frame inside the ImGui frame.
type ImguiItem struct {
	Title  string
	Render func()
}

// ImguiInputState mirrors whether ImGui wants the mouse or keyboard this frame.
// Game input should be ignored while either flag is set.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem publishes ImGui's capture flags and queues every ImguiItem render.
// Register it last so windows draw on top of anything systems queued before it.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := s.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range s.Items.Iter() {
		if item.ImguiItem.Render != nil {
			frame.Commands.Defer(item.ImguiItem.Render)
		}
	}
}
