package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	forward  mgl32.Vec3 // unit vector, the direction the camera faces
	up       mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	// pendingLookAt is set by WithLookAt and applied once all options have run,
	// so the look-at point is resolved against the final position.
	pendingLookAt *mgl32.Vec3

	viewMatrix              mgl32.Mat4
	projectionMatrix        mgl32.Mat4
	viewProjectionMatrix    mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for a perspective camera handle.
// The camera owns its world-space position and orientation; an OrbitController
// writes both once per frame. View and projection matrices are recomputed on every mutation.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera without changing the direction it faces.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p mgl32.Vec3)

	// LookAt orients the camera so it faces the given world-space point, using the camera's up vector.
	// If the point coincides with the camera position the orientation is left unchanged.
	//
	// Parameters:
	//   - target: world-space point to face
	LookAt(target mgl32.Vec3)

	// WorldDirection returns the unit vector the camera is facing, in world space.
	//
	// Returns:
	//   - mgl32.Vec3: unit forward vector
	WorldDirection() mgl32.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: up vector
	Up() mgl32.Vec3

	// SetUp sets the camera's up vector and recomputes matrices.
	//
	// Parameters:
	//   - up: up vector
	SetUp(up mgl32.Vec3)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current perspective projection matrix (OpenGL clip space).
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix (column-major)
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// InverseProjectionMatrix returns the inverse of the projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the inverse projection matrix
	InverseProjectionMatrix() mgl32.Mat4

	// Frustum returns the world-space view frustum.
	//
	// Returns:
	//   - common.Frustum: the frustum extracted from the view-projection matrix
	Frustum() common.Frustum
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
// The default camera sits at the origin facing -Z with +Y up.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 0, 0},
		forward:  mgl32.Vec3{0, 0, -1},
		up:       common.WorldUp,
		fov:      45.0 * (math.Pi / 180.0), // radians
		aspect:   1.0,
		near:     0.1,
		far:      100.0,
	}
	for _, option := range options {
		option(c)
	}
	if c.pendingLookAt != nil {
		c.lookAt(*c.pendingLookAt)
		c.pendingLookAt = nil
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !common.IsFiniteVec3(p) {
		return
	}
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookAt(target)
	c.updateMatrices()
}

func (c *cameraImpl) WorldDirection() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forward
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.FrustumFromMatrix(c.viewProjectionMatrix)
}

// lookAt points the forward vector at target. A target at the camera position has no
// direction and keeps the previous orientation.
// Caller must hold the mutex.
func (c *cameraImpl) lookAt(target mgl32.Vec3) {
	dir, err := common.NormalizeSafe(target.Sub(c.position))
	if err != nil {
		return
	}
	c.forward = dir
}

// updateMatrices recalculates the view, projection, view-projection, and inverse projection matrices.
// When the forward vector is parallel to the up vector the view matrix is undefined and the
// previous view matrix is kept.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if _, err := common.NormalizeSafe(c.forward.Cross(c.up)); err == nil {
		c.viewMatrix = mgl32.LookAtV(c.position, c.position.Add(c.forward), c.up)
	}

	if c.aspect > 0 && c.near > 0 && c.far > c.near {
		c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
		c.inverseProjectionMatrix = c.projectionMatrix.Inv()
	}

	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
