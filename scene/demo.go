package scene

// Demo returns the built-in demo scene: a textured, perspective-correct
// cube standing on a grid, the world axes, and a translucent panel
// blended over everything.
func Demo() *Scene {
	s, err := NewBuilder(320, 240).
		Clear("#1e1e2a").
		Camera([3]float32{2.4, 1.8, 3}, [3]float32{0, 0.3, 0}, 45).
		Light([3]float32{0.4, 1, 0.6}).
		Depth("less").
		Scale(2).
		Mesh("grid").
		ResetDraw().
		Depth("less").
		Interp("correct").
		Texture("checker").
		Translate(0, 0.5, 0).
		RotateY(30).
		Mesh("cube").
		ResetDraw().
		Depth("less").
		Scale(1.5).
		Mesh("axes").
		ResetDraw().
		Depth("less").
		DepthWrite(false).
		Blend("over").
		Interp("smooth").
		Vertices(ProgramColor, "triangle_list", [][]float32{
			{-1.5, 0, 1, 1, 0.8, 0.2, 0.5}, {-0.5, 0, 1, 1, 0.8, 0.2, 0.5}, {-0.5, 1, 1, 1, 0.2, 0.2, 0.5},
			{-1.5, 0, 1, 1, 0.8, 0.2, 0.5}, {-0.5, 1, 1, 1, 0.2, 0.2, 0.5}, {-1.5, 1, 1, 1, 0.2, 0.2, 0.5},
		}).
		Build()
	if err != nil {
		panic("scene: invalid demo scene: " + err.Error())
	}
	return s
}
