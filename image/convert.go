package image

// ToRGB returns a new RGB888 copy of an RGBA8888 image with the alpha
// channel discarded. No compositing is performed.
func ToRGB(m *Image) (*Image, error) {
	if m.Format != RGBA8888 {
		return nil, ErrUnsupportedFormat
	}
	if err := m.Check(); err != nil {
		return nil, err
	}

	o, err := New(m.Width, m.Height, RGB888)
	if err != nil {
		return nil, err
	}

	for i, j := 0, 0; j < len(o.Pix); i, j = i+4, j+3 {
		o.Pix[j+0] = m.Pix[i+0]
		o.Pix[j+1] = m.Pix[i+1]
		o.Pix[j+2] = m.Pix[i+2]
	}

	return o, nil
}
