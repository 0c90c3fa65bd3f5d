package fbx

import (
	"strings"

	"scene-toolkit/core/scene"
)

// TicksPerSecond is the FBX time unit (KTime).
const TicksPerSecond = 46186158000

// nameSeparator splits "Name\x00\x01Class" object names.
const nameSeparator = "\x00\x01"

type object struct {
	id    int64
	class string
	name  string
	node  *Node
}

// Build converts a parsed document into a scene graph rooted at a container
// named name. Animation stacks become clips on the root.
func Build(doc *Document, name string) *scene.Object3D {
	root := scene.NewObject3D(name)

	objects := map[int64]*object{}
	var order []int64
	if objs := doc.Root.Child("Objects"); objs != nil {
		for _, n := range objs.Children {
			id, ok := int64Prop(n, 0)
			if !ok {
				continue
			}
			objects[id] = &object{id: id, class: n.Name, name: objectName(n), node: n}
			order = append(order, id)
		}
	}

	models := map[int64]*scene.Object3D{}
	for _, id := range order {
		o := objects[id]
		if o.class != "Model" {
			continue
		}
		m := scene.NewObject3D(o.name)
		m.Position = lclTranslation(o.node)
		models[id] = m
	}

	materials := map[int64]*scene.Material{}
	geometries := map[int64]*scene.Geometry{}
	for _, id := range order {
		o := objects[id]
		switch o.class {
		case "Material":
			mat := scene.NewMaterial("phong")
			mat.Name = o.name
			materials[id] = mat
		case "Geometry":
			geometries[id] = &scene.Geometry{Name: o.name, VertexCount: vertexCount(o.node)}
		}
	}

	attached := map[int64]bool{}
	if conns := doc.Root.Child("Connections"); conns != nil {
		for _, c := range conns.ChildrenNamed("C") {
			kind, _ := stringProp(c, 0)
			if kind != "OO" {
				continue
			}
			child, ok1 := int64Prop(c, 1)
			parent, ok2 := int64Prop(c, 2)
			if !ok1 || !ok2 {
				continue
			}

			target, isModel := models[parent]
			switch {
			case models[child] != nil && parent == 0:
				root.Add(models[child])
				attached[child] = true
			case models[child] != nil && isModel:
				target.Add(models[child])
				attached[child] = true
			case geometries[child] != nil && isModel:
				meshOf(target).Geometry = geometries[child]
			case materials[child] != nil && isModel:
				mesh := meshOf(target)
				mesh.Materials = append(mesh.Materials, materials[child])
			}
		}
	}

	// Models without a connection hang off the root so nothing is lost.
	for _, id := range order {
		if m, ok := models[id]; ok && !attached[id] {
			root.Add(m)
		}
	}

	for _, id := range order {
		if o := objects[id]; o.class == "AnimationStack" {
			root.Animations = append(root.Animations, &scene.AnimationClip{
				Name:     o.name,
				Duration: stackDuration(o.node),
			})
		}
	}

	return root
}

func meshOf(o *scene.Object3D) *scene.Mesh {
	if o.Mesh == nil {
		o.Mesh = &scene.Mesh{}
	}
	return o.Mesh
}

func objectName(n *Node) string {
	s, _ := stringProp(n, 1)
	name, _, _ := strings.Cut(s, nameSeparator)
	return name
}

func int64Prop(n *Node, i int) (int64, bool) {
	if i >= len(n.Properties) {
		return 0, false
	}
	switch v := n.Properties[i].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	}
	return 0, false
}

func stringProp(n *Node, i int) (string, bool) {
	if i >= len(n.Properties) {
		return "", false
	}
	s, ok := n.Properties[i].(string)
	return s, ok
}

func floatProp(n *Node, i int) float64 {
	if i >= len(n.Properties) {
		return 0
	}
	switch v := n.Properties[i].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	}
	return 0
}

// property70 finds a P record by name under Properties70.
func property70(n *Node, name string) *Node {
	props := n.Child("Properties70")
	if props == nil {
		return nil
	}
	for _, p := range props.ChildrenNamed("P") {
		if s, _ := stringProp(p, 0); s == name {
			return p
		}
	}
	return nil
}

func lclTranslation(n *Node) scene.Vector3 {
	p := property70(n, "Lcl Translation")
	if p == nil {
		return scene.Vector3{}
	}
	return scene.Vec3(float32(floatProp(p, 4)), float32(floatProp(p, 5)), float32(floatProp(p, 6)))
}

func vertexCount(n *Node) int {
	v := n.Child("Vertices")
	if v == nil || len(v.Properties) == 0 {
		return 0
	}
	switch arr := v.Properties[0].(type) {
	case []float64:
		return len(arr) / 3
	case []float32:
		return len(arr) / 3
	}
	return 0
}

func stackDuration(n *Node) float32 {
	p := property70(n, "LocalStop")
	if p == nil {
		return 0
	}
	ticks, _ := int64Prop(p, 4)
	return float32(float64(ticks) / TicksPerSecond)
}

// ObjectName joins a name and class the way FBX stores object names.
func ObjectName(name, class string) string {
	return name + nameSeparator + class
}
