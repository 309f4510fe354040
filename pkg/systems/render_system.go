package systems

import (
	"image/color"
	"log"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/gonewx/deskscene/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// maxBatchVertices 单次 DrawTriangles 的顶点上限（uint16 索引）
const maxBatchVertices = 60000

// 显示器文字排版
const (
	monitorTextX      = 12
	monitorTextY      = 10
	monitorLineHeight = 16
	monitorFontSize   = 13
)

// monitorTextColor 终端绿
var monitorTextColor = color.RGBA{R: 0x33, G: 0xff, B: 0x66, A: 0xff}

// drawItem 一个待绘制的面（已着色）
type drawItem struct {
	face    face
	depth   float64
	color   colorful.Color
	alpha   float64
	texture *ebiten.Image
}

// RenderSystem 将场景绘制到屏幕
//
// 渲染流程：
//  1. 重绘显示器屏幕贴图（开机文字）
//  2. 所有网格展开为面，背面剔除后按 Lambert 光照着色
//  3. 按视深从远到近排序（画家算法），连续同贴图的面合并为一次 DrawTriangles
//  4. 蒸汽粒子作为面向镜头的贴图方块，加法混合叠加在最上层
type RenderSystem struct {
	entityManager *ecs.EntityManager
	cameraSystem  *CameraSystem

	background  colorful.Color
	user        string
	monitorFace *text.GoTextFace // nil 时退回调试字体

	// 以下切片每帧复用，避免分配
	faces     []face
	drawList  []drawItem
	lights    []sceneLight
	vertices  []ebiten.Vertex
	indices   []uint16
	white     *ebiten.Image
	debugOnce bool
}

// NewRenderSystem 创建渲染系统
// 参数:
//   - background: 清屏颜色
//   - user: 登录界面显示的用户名
func NewRenderSystem(em *ecs.EntityManager, cs *CameraSystem, background colorful.Color, user string) *RenderSystem {
	monoFace, err := utils.NewMonoFace(monitorFontSize)
	if err != nil {
		log.Printf("[RenderSystem] 等宽字体加载失败，使用调试字体: %v", err)
	}

	return &RenderSystem{
		monitorFace:   monoFace,
		entityManager: em,
		cameraSystem:  cs,
		background:    background,
		user:          user,
		faces:         make([]face, 0, 256),
		drawList:      make([]drawItem, 0, 512),
		vertices:      make([]ebiten.Vertex, 0, 4096),
		indices:       make([]uint16, 0, 6144),
		white:         utils.WhiteSubImage(),
		debugOnce:     true,
	}
}

// Draw 绘制整个场景
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)

	bounds := screen.Bounds()
	proj, ok := s.cameraSystem.Projector(bounds.Dx(), bounds.Dy())
	if !ok {
		return
	}

	lampOn := LampOn(s.entityManager)
	s.lights = collectLights(s.lights, s.entityManager, lampOn)

	s.drawMonitors()
	s.buildDrawList(proj, lampOn)
	s.drawFaces(screen, proj)
	s.DrawSteam(screen, proj)

	if s.debugOnce {
		log.Printf("[RenderSystem] 首帧: %d 个面, %d 个光源, lampOn=%v", len(s.drawList), len(s.lights), lampOn)
		s.debugOnce = false
	}
}

// drawMonitors 重绘显示器屏幕贴图
func (s *RenderSystem) drawMonitors() {
	for _, id := range ecs.GetEntitiesWith1[*components.MonitorComponent](s.entityManager) {
		m, _ := ecs.GetComponent[*components.MonitorComponent](s.entityManager, id)
		if m.Screen == nil {
			continue
		}
		m.Screen.Fill(color.Black)
		maxWidth := float64(m.Screen.Bounds().Dx() - 2*monitorTextX)

		row := 0
		for _, line := range MonitorLines(m, s.user) {
			if s.monitorFace == nil {
				ebitenutil.DebugPrintAt(m.Screen, line, monitorTextX, monitorTextY+row*monitorLineHeight)
				row++
				continue
			}
			for _, wrapped := range utils.WrapText(line, s.monitorFace, maxWidth) {
				op := &text.DrawOptions{}
				op.GeoM.Translate(monitorTextX, float64(monitorTextY+row*monitorLineHeight))
				op.ColorScale.ScaleWithColor(monitorTextColor)
				text.Draw(m.Screen, wrapped, s.monitorFace, op)
				row++
			}
		}
	}
}

// buildDrawList 展开网格、剔除背面、着色并排序
func (s *RenderSystem) buildDrawList(proj utils.Projector, lampOn bool) {
	s.drawList = s.drawList[:0]

	ids := ecs.GetEntitiesWith2[*components.TransformComponent, *components.MeshComponent](s.entityManager)
	for _, id := range ids {
		mesh, _ := ecs.GetComponent[*components.MeshComponent](s.entityManager, id)
		if mesh.Hidden || mesh.Opacity <= 0 {
			continue
		}

		world := WorldMatrix(s.entityManager, id)
		s.faces = appendMeshFaces(s.faces[:0], mesh, world)

		for i := range s.faces {
			f := &s.faces[i]
			center := f.center()
			if f.normal.Dot(proj.Eye.Sub(center)) <= 0 {
				continue // 背面
			}
			_, _, depth, visible := proj.Project(center)
			if !visible {
				continue
			}

			s.drawList = append(s.drawList, drawItem{
				face:    *f,
				depth:   depth,
				color:   shadeMesh(mesh, irradiance(s.lights, center, f.normal), lampOn),
				alpha:   mesh.Opacity,
				texture: faceTexture(mesh),
			})
		}
	}

	sort.SliceStable(s.drawList, func(i, j int) bool {
		return s.drawList[i].depth > s.drawList[j].depth
	})
}

// faceTexture 只有平面使用贴图
func faceTexture(mesh *components.MeshComponent) *ebiten.Image {
	if mesh.Shape == components.ShapePlane {
		return mesh.Texture
	}
	return nil
}

// drawFaces 按排序结果绘制，连续同贴图的面合并为一批
func (s *RenderSystem) drawFaces(screen *ebiten.Image, proj utils.Projector) {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	var batchTex *ebiten.Image

	for i := range s.drawList {
		item := &s.drawList[i]
		if item.texture != batchTex || len(s.vertices)+4 > maxBatchVertices {
			s.flush(screen, batchTex, nil)
			batchTex = item.texture
		}
		s.appendFace(proj, item)
	}
	s.flush(screen, batchTex, nil)
}

// appendFace 投影一个面并追加顶点与索引；任一顶点在镜头之后则整面跳过
func (s *RenderSystem) appendFace(proj utils.Projector, item *drawItem) {
	var sx, sy [4]float64
	for k := 0; k < item.face.n; k++ {
		x, y, _, ok := proj.Project(item.face.points[k])
		if !ok {
			return
		}
		sx[k], sy[k] = x, y
	}

	src := s.white
	if item.texture != nil {
		src = item.texture
	}
	b := src.Bounds()

	base := uint16(len(s.vertices))
	for k := 0; k < item.face.n; k++ {
		v := ebiten.Vertex{
			DstX:   float32(sx[k]),
			DstY:   float32(sy[k]),
			SrcX:   float32(b.Min.X) + item.face.uv[k][0]*float32(b.Dx()),
			SrcY:   float32(b.Min.Y) + item.face.uv[k][1]*float32(b.Dy()),
			ColorR: float32(item.color.R),
			ColorG: float32(item.color.G),
			ColorB: float32(item.color.B),
			ColorA: float32(item.alpha),
		}
		if item.texture == nil {
			v.SrcX, v.SrcY = float32(b.Min.X), float32(b.Min.Y)
		}
		s.vertices = append(s.vertices, v)
	}

	s.indices = append(s.indices, base, base+1, base+2)
	if item.face.n == 4 {
		s.indices = append(s.indices, base, base+2, base+3)
	}
}

// flush 提交当前批次
func (s *RenderSystem) flush(screen, texture *ebiten.Image, blend *ebiten.Blend) {
	if len(s.indices) == 0 {
		s.vertices = s.vertices[:0]
		return
	}
	src := s.white
	if texture != nil {
		src = texture
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	if blend != nil {
		op.Blend = *blend
	}
	screen.DrawTriangles(s.vertices, s.indices, src, op)

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}

// DrawSteam 绘制所有蒸汽粒子：以粒子世界位置为中心、边长 Scale 的镜头朝向方块
func (s *RenderSystem) DrawSteam(screen *ebiten.Image, proj utils.Projector) {
	for _, id := range ecs.GetEntitiesWith1[*components.SteamComponent](s.entityManager) {
		steam, _ := ecs.GetComponent[*components.SteamComponent](s.entityManager, id)
		if steam.Animator == nil || steam.Texture == nil {
			continue
		}
		world := WorldMatrix(s.entityManager, id)

		flush := func(v []ebiten.Vertex, idx []uint16) {
			s.vertices, s.indices = v, idx
			s.flush(screen, steam.Texture, &ebiten.BlendLighter)
		}
		s.vertices, s.indices = AppendSteamQuads(s.vertices[:0], s.indices[:0], steam, world, proj, flush)
		s.flush(screen, steam.Texture, &ebiten.BlendLighter)
	}
}

// AppendSteamQuads 把一个发射器的粒子展开为屏幕空间方块
//
// 不透明度为 0 或位于镜头之后的粒子不产生顶点。
// 顶点数将超过 maxBatchVertices 时先把已有批次交给 flush 提交，再从空缓冲继续，
// 因此返回的缓冲只含最后一批。flush 为 nil 时批次满即停止追加。
func AppendSteamQuads(vertices []ebiten.Vertex, indices []uint16, steam *components.SteamComponent, world mgl64.Mat4, proj utils.Projector, flush func([]ebiten.Vertex, []uint16)) ([]ebiten.Vertex, []uint16) {
	if steam.Animator == nil {
		return vertices, indices
	}
	var srcW, srcH float32 = 1, 1
	var srcX, srcY float32
	if steam.Texture != nil {
		b := steam.Texture.Bounds()
		srcX, srcY = float32(b.Min.X), float32(b.Min.Y)
		srcW, srcH = float32(b.Dx()), float32(b.Dy())
	}

	particles := steam.Animator.Particles()
	for i := range particles {
		p := &particles[i]
		if p.Opacity <= 0 {
			continue
		}
		sx, sy, depth, ok := proj.Project(utils.TransformPoint(world, mgl64.Vec3{p.X, p.Y, p.Z}))
		if !ok {
			continue
		}
		half := float32(p.Scale * proj.PixelsPerUnit(depth) / 2)
		cx, cy := float32(sx), float32(sy)
		alpha := float32(p.Opacity)

		if len(vertices)+4 > maxBatchVertices {
			if flush == nil {
				break
			}
			flush(vertices, indices)
			vertices, indices = vertices[:0], indices[:0]
		}

		base := uint16(len(vertices))
		vertices = append(vertices,
			ebiten.Vertex{DstX: cx - half, DstY: cy - half, SrcX: srcX, SrcY: srcY, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: alpha},
			ebiten.Vertex{DstX: cx + half, DstY: cy - half, SrcX: srcX + srcW, SrcY: srcY, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: alpha},
			ebiten.Vertex{DstX: cx - half, DstY: cy + half, SrcX: srcX, SrcY: srcY + srcH, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: alpha},
			ebiten.Vertex{DstX: cx + half, DstY: cy + half, SrcX: srcX + srcW, SrcY: srcY + srcH, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: alpha},
		)
		indices = append(indices,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
	return vertices, indices
}
