package debugui

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/spinframe/ecs"
)

// ComponentInspectorComponent shows and edits the components of the selected entity.
type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityID
}

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

// Render holds the entity lock for the whole panel so edits land atomically
// with respect to running systems.
func (ci *ComponentInspectorComponent) Render(world *ecs.World, selectedEntityId ecs.EntityID) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == (ecs.EntityID{}) {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	ref, ok := world.Entity(ci.selectedEntityId)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %s not found (deleted)", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %s", ci.selectedEntityId))
	imgui.Separator()

	ref.With(func(entity *ecs.Entity) {
		for _, component := range entity.Components() {
			if imgui.TreeNodeStr(component.Type().String()) {
				ci.renderComponent(component)
				imgui.TreePop()
			}
		}
	})

	imgui.End()
}

func (ci *ComponentInspectorComponent) renderComponent(component ecs.Component) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	fields := globalReflectionCache.GetFields(val.Type())
	if len(fields) == 0 {
		imgui.Text("(marker)")
		return
	}

	for _, field := range fields {
		ci.renderField(field.Name, val.Field(field.Index))
	}
}

// renderField draws one field. val is addressable, so edits write straight
// into the component.
func (ci *ComponentInspectorComponent) renderField(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				ci.renderField(nf.Name, val.Field(nf.Index))
			}
			imgui.TreePop()
		}

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String || val.Type().Elem().Kind() != reflect.String {
			imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))
			return
		}
		props, _ := val.Interface().(map[string]string)
		if imgui.TreeNodeStr(fmt.Sprintf("%s (%d)", name, len(props))) {
			for _, key := range slices.Sorted(maps.Keys(props)) {
				imgui.BulletText(fmt.Sprintf("%s = %s", key, props[key]))
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
